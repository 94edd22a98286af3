// Package asm parses lines of SPARC assembly into instructions ready to be encoded.
//
// The syntax is "MNEMONIC op, op, ..." with operands in the order of the instruction
// descriptor (see instructions.Instructions). Operands are registers (%g1, %sp),
// integers (42, -8, 0x1f, 0b101), condition codes of branches (ne, a, rnz) and
// expressions made of symbols, integers, + and - and relocation modifiers such as
// %hi(sym) or %tgd_call(sym).
package asm

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/registers"
	"github.com/Manu343726/sparcmc/pkg/utils"
)

var ErrSyntax = errors.New("syntax error")

func newSyntaxError(column int, format string, args ...any) error {
	return utils.MakeError(ErrSyntax, "column %v: "+format, append([]any{column}, args...)...)
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != token_EOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(punct string) bool {
	if t := p.peek(); t.kind == token_Punct && t.text == punct {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(punct string) error {
	if !p.accept(punct) {
		t := p.peek()
		return newSyntaxError(t.column, "expected '%v', got '%v'", punct, t.text)
	}
	return nil
}

func (p *parser) expectIdent() (token, error) {
	t := p.next()
	if t.kind != token_Ident {
		return t, newSyntaxError(t.column, "expected identifier, got '%v'", t.text)
	}
	return t, nil
}

// expr := unary (('+' | '-') unary)*
func (p *parser) expression() (expressions.Expression, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		var op expressions.BinaryOp

		if p.accept("+") {
			op = expressions.BinaryOp_Add
		} else if p.accept("-") {
			op = expressions.BinaryOp_Sub
		} else {
			return lhs, nil
		}

		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}

		lhs = &expressions.Binary{Op: op, LHS: lhs, RHS: rhs}
	}
}

// unary := '-' unary | primary
func (p *parser) unary() (expressions.Expression, error) {
	if !p.accept("-") {
		return p.primary()
	}

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}

	if constant, isConstant := operand.(*expressions.Constant); isConstant {
		return expressions.Const(-constant.Value), nil
	}

	return expressions.Sub(expressions.Const(0), operand), nil
}

// primary := number | symbol | '%' variant '(' expr ')' | '(' expr ')'
func (p *parser) primary() (expressions.Expression, error) {
	t := p.next()

	switch {
	case t.kind == token_Number:
		value, err := parseInteger(t.text)
		if err != nil {
			return nil, newSyntaxError(t.column, "%v", err)
		}
		return expressions.Const(value), nil
	case t.kind == token_Ident:
		return expressions.Symbol(t.text), nil
	case t.kind == token_Punct && t.text == "(":
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		return expr, p.expect(")")
	case t.kind == token_Punct && t.text == "%":
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		variant, err := expressions.ParseVariant(name.text)
		if err != nil {
			return nil, utils.MakeError(err, "column %v", name.column)
		}

		if err := p.expect("("); err != nil {
			return nil, err
		}

		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		return expressions.Wrap(variant, expr), p.expect(")")
	}

	if t.kind == token_EOF {
		return nil, newSyntaxError(t.column, "unexpected end of line")
	}

	return nil, newSyntaxError(t.column, "unexpected '%v'", t.text)
}

func (p *parser) register() (*registers.RegisterDescriptor, error) {
	if err := p.expect("%"); err != nil {
		return nil, err
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	return registers.RegisterClasses.RegisterByName(name.text)
}

func (p *parser) conditionCode(descriptor *instructions.OperandDescriptor) (instructions.Operand, bool, error) {
	t := p.peek()
	if t.kind != token_Ident {
		return instructions.Operand{}, false, nil
	}

	p.next()

	if descriptor.Name == "rcond" {
		rcc, err := instructions.ParseRegisterConditionCode(t.text)
		return instructions.ImmediateOperand(int64(rcc)), true, err
	}

	cc, err := instructions.ParseConditionCode(t.text)
	return instructions.ImmediateOperand(int64(cc)), true, err
}

func (p *parser) operand(descriptor *instructions.OperandDescriptor) (instructions.Operand, error) {
	if descriptor.IsRegister() {
		register, err := p.register()
		if err != nil {
			return instructions.Operand{}, err
		}
		return instructions.RegisterOperand(register), nil
	}

	if descriptor.Name == "cond" || descriptor.Name == "rcond" {
		if operand, isConditionCode, err := p.conditionCode(descriptor); isConditionCode {
			return operand, err
		}
	}

	expr, err := p.expression()
	if err != nil {
		return instructions.Operand{}, err
	}

	// Plain integers are immediates, everything else is left to the emitter
	if constant, isConstant := expr.(*expressions.Constant); isConstant {
		return instructions.ImmediateOperand(constant.Value), nil
	}

	return instructions.ExpressionOperand(expr), nil
}

func parseInteger(text string) (int64, error) {
	if value, err := strconv.ParseInt(text, 0, 64); err == nil {
		return value, nil
	}

	// Allow full 64 bit patterns such as 0xffffffffffffffff
	value, err := strconv.ParseUint(text, 0, 64)
	return int64(value), err
}

// Parses a standalone expression
func ParseExpression(text string) (expressions.Expression, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	p := parser{tokens: tokens}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.kind != token_EOF {
		return nil, newSyntaxError(t.column, "unexpected '%v' after expression", t.text)
	}

	return expr, nil
}

// Parses a line of assembly. Returns nil if the line is empty or only has a comment
func ParseInstruction(line string) (*instructions.Instruction, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return nil, err
	}

	p := parser{tokens: tokens}

	if p.peek().kind == token_EOF {
		return nil, nil
	}

	mnemonic, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	descriptor, err := instructions.Instructions.InstructionByMnemonic(mnemonic.text)
	if err != nil {
		return nil, err
	}

	operands := make([]instructions.Operand, 0, len(descriptor.Operands))

	for i, operandDescriptor := range descriptor.Operands {
		if i > 0 {
			if err := p.expect(","); err != nil {
				return nil, utils.MakeError(err, "%v expects %v operands", descriptor.OpCode.Mnemonic, len(descriptor.Operands))
			}
		}

		operand, err := p.operand(operandDescriptor)
		if err != nil {
			return nil, utils.MakeError(err, "operand %v (%v) of %v", i, operandDescriptor.Name, descriptor.OpCode.Mnemonic)
		}

		operands = append(operands, operand)
	}

	if t := p.peek(); t.kind != token_EOF {
		return nil, newSyntaxError(t.column, "unexpected '%v' after the operands of %v", t.text, descriptor.OpCode.Mnemonic)
	}

	return instructions.NewInstruction(descriptor, operands)
}

// Parses a program, one instruction per line. Empty lines and comments are skipped
func ParseProgram(source string) ([]*instructions.Instruction, error) {
	program := []*instructions.Instruction{}

	for number, line := range strings.Split(source, "\n") {
		inst, err := ParseInstruction(line)
		if err != nil {
			return nil, utils.MakeError(err, "line %v", number+1)
		}

		if inst != nil {
			program = append(program, inst)
		}
	}

	return program, nil
}
