package listing

import (
	"fmt"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"
)

func formatFixups(entry Entry) string {
	return strings.Join(utils.Map(entry.Fixups, func(fixup Fixup) string {
		return fmt.Sprintf("%v(%v)", fixup.Kind, fixup.Expression)
	}), "\n")
}

// Renders the listing as a table with one row per instruction
func (l *Listing) Table() string {
	writer := table.NewWriter()
	writer.SetTitle(fmt.Sprintf("%v instructions, %v fixups (%v)", len(l.Entries), l.TotalFixups(), l.ByteOrder))
	writer.AppendHeader(table.Row{"Offset", "Word", "Bytes", "Instruction", "Fixups"})

	for _, entry := range l.Entries {
		writer.AppendRow(table.Row{
			utils.FormatUintHex(uint64(entry.Offset), 4),
			entry.Word,
			entry.Bytes,
			entry.Instruction,
			formatFixups(entry),
		})
	}

	return writer.Render()
}

// Renders the listing as a tree explaining how every operand was encoded
func (l *Listing) Tree() string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%v instructions (%v)", len(l.Entries), l.ByteOrder))

	for _, entry := range l.Entries {
		branch := tree.AddMetaBranch(utils.FormatUintHex(uint64(entry.Offset), 4), entry.Instruction)
		branch.AddMetaNode("word", fmt.Sprintf("%v [%v]", entry.Word, entry.Bytes))

		operands := branch.AddBranch("operands")
		for _, operand := range entry.Operands {
			operands.AddMetaNode(operand.Name, fmt.Sprintf("%v %v = %v", operand.Encoding, operand.Class, operand.Value))
		}

		if len(entry.Fixups) > 0 {
			fixups := branch.AddBranch("fixups")
			for _, fixup := range entry.Fixups {
				value := fmt.Sprintf("%v(%v)", fixup.Kind, fixup.Expression)
				if fixup.PCRelative {
					value += " pcrel"
				}

				fixups.AddMetaNode(utils.FormatUintHex(uint64(fixup.Offset), 4), value)
			}
		}
	}

	return tree.String()
}

// Serializes the listing as a YAML document
func (l *Listing) YAML() ([]byte, error) {
	return yaml.Marshal(l)
}
