package insts

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is a single structured diagnostic produced while parsing an
// assembly source. Line is 1-based.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseResult is the outcome of parsing an assembly source. On success
// Errors is empty and Instructions holds the full program in program
// order; on failure Instructions is nil. Either way nothing outside this
// result is mutated, so a caller can discard a failed parse for free.
type ParseResult struct {
	Instructions []Instruction
	Errors       []ParseError
}

// Parse tokenizes and parses an assembly source into a program. Labels
// resolve to the program index of the instruction immediately following
// their definition; a label with no following instruction resolves to the
// length of the program. Parsing is a single pass that first records
// label definitions against the instruction index they would occupy, then
// resolves every label-valued operand against that table, so forward
// references work.
func Parse(source string) ParseResult {
	type pending struct {
		line   int
		tokens []string
	}

	var rawLines []pending
	labels := make(map[string]int)

	for lineNo, rawLine := range strings.Split(source, "\n") {
		line := stripComment(rawLine)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// A label definition may stand alone on its line, or prefix an
		// instruction on the same line ("LOOP: ADD R1,R2,R3").
		if idx := strings.Index(line, ":"); idx >= 0 && isLabelName(strings.TrimSpace(line[:idx])) {
			name := strings.TrimSpace(line[:idx])
			labels[name] = len(rawLines)
			rest := strings.TrimSpace(line[idx+1:])
			if rest == "" {
				continue
			}
			line = rest
		}

		tokens := tokenize(line)
		rawLines = append(rawLines, pending{line: lineNo + 1, tokens: tokens})
	}

	result := ParseResult{Instructions: make([]Instruction, 0, len(rawLines))}
	for idx, p := range rawLines {
		inst, err := parseInstruction(p.tokens, p.line, idx, labels)
		if err != nil {
			result.Errors = append(result.Errors, *err)
			continue
		}
		result.Instructions = append(result.Instructions, *inst)
	}

	if len(result.Errors) > 0 {
		result.Instructions = nil
	}

	return result
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func isLabelName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

func tokenize(line string) []string {
	line = strings.ReplaceAll(line, ",", " ")
	return strings.Fields(line)
}

func parseInstruction(tokens []string, lineNo int, progIndex int, labels map[string]int) (*Instruction, *ParseError) {
	if len(tokens) == 0 {
		return nil, &ParseError{Line: lineNo, Message: "empty instruction"}
	}

	mnemonic := strings.ToUpper(tokens[0])
	inst := &Instruction{ID: progIndex, PC: progIndex, Target: -1}

	switch mnemonic {
	case "ADD", "SUB", "NAND", "MUL":
		if len(tokens) != 4 {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("%s requires 3 register operands", mnemonic)}
		}
		ra, err := parseReg(tokens[1], lineNo)
		if err != nil {
			return nil, err
		}
		rb, err := parseReg(tokens[2], lineNo)
		if err != nil {
			return nil, err
		}
		rc, err := parseReg(tokens[3], lineNo)
		if err != nil {
			return nil, err
		}
		inst.Op = opFor(mnemonic)
		inst.RA, inst.RB, inst.RC = ra, rb, rc

	case "LOAD", "STORE":
		if len(tokens) != 3 {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("%s requires a register and an offset(reg) operand", mnemonic)}
		}
		ra, err := parseReg(tokens[1], lineNo)
		if err != nil {
			return nil, err
		}
		offset, rb, err := parseMemOperand(tokens[2], lineNo)
		if err != nil {
			return nil, err
		}
		if mnemonic == "LOAD" {
			inst.Op = LOAD
		} else {
			inst.Op = STORE
		}
		inst.RA, inst.RB = ra, rb
		inst.HasImm, inst.Imm = true, offset

	case "BEQ":
		if len(tokens) != 4 {
			return nil, &ParseError{Line: lineNo, Message: "BEQ requires two registers and a label"}
		}
		ra, err := parseReg(tokens[1], lineNo)
		if err != nil {
			return nil, err
		}
		rb, err := parseReg(tokens[2], lineNo)
		if err != nil {
			return nil, err
		}
		inst.Op = BEQ
		inst.RA, inst.RB = ra, rb
		inst.Label = tokens[3]

	case "CALL":
		if len(tokens) != 2 {
			return nil, &ParseError{Line: lineNo, Message: "CALL requires a label"}
		}
		inst.Op = CALL
		inst.Label = tokens[1]

	case "RET":
		if len(tokens) != 1 {
			return nil, &ParseError{Line: lineNo, Message: "RET takes no operands"}
		}
		inst.Op = RET

	default:
		return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("unknown opcode %q", tokens[0])}
	}

	if inst.Label != "" {
		target, ok := labels[inst.Label]
		if !ok {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("undefined label %q", inst.Label)}
		}
		inst.Target = target
		if inst.Op == BEQ {
			// BEQ's jump is PC-relative (next PC = PC + 1 + imm), so the
			// label resolves to a signed offset from the instruction
			// immediately following the branch, not an absolute index.
			inst.HasImm = true
			inst.Imm = int16(target - (progIndex + 1))
		}
	}

	return inst, nil
}

func opFor(mnemonic string) Op {
	switch mnemonic {
	case "ADD":
		return ADD
	case "SUB":
		return SUB
	case "NAND":
		return NAND
	case "MUL":
		return MUL
	}
	return OpUnknown
}

func parseReg(tok string, lineNo int) (uint8, *ParseError) {
	if len(tok) < 2 || (tok[0] != 'R' && tok[0] != 'r') {
		return 0, &ParseError{Line: lineNo, Message: fmt.Sprintf("expected a register operand, got %q", tok)}
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 || n > 7 {
		return 0, &ParseError{Line: lineNo, Message: fmt.Sprintf("invalid register %q, must be R0..R7", tok)}
	}
	return uint8(n), nil
}

// parseMemOperand parses the "offset(Rn)" addressing form used by LOAD
// and STORE.
func parseMemOperand(tok string, lineNo int) (int16, uint8, *ParseError) {
	open := strings.IndexByte(tok, '(')
	close := strings.IndexByte(tok, ')')
	if open < 0 || close < 0 || close < open {
		return 0, 0, &ParseError{Line: lineNo, Message: fmt.Sprintf("expected offset(Rn), got %q", tok)}
	}
	offsetStr := tok[:open]
	regStr := tok[open+1 : close]

	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		return 0, 0, &ParseError{Line: lineNo, Message: fmt.Sprintf("invalid offset %q", offsetStr)}
	}
	reg, regErr := parseReg(regStr, lineNo)
	if regErr != nil {
		return 0, 0, regErr
	}
	return int16(offset), reg, nil
}

// Render renders a parsed program back to assembly text. It is the
// inverse of Parse up to comments and whitespace: Parse(Render(p)) yields
// an instruction sequence identical to p.
func Render(program []Instruction) string {
	labelsAt := make(map[int][]string)
	seen := make(map[string]bool)
	for _, inst := range program {
		if inst.Label != "" && !seen[inst.Label] {
			seen[inst.Label] = true
			labelsAt[inst.Target] = append(labelsAt[inst.Target], inst.Label)
		}
	}

	var b strings.Builder
	for i := 0; i <= len(program); i++ {
		for _, name := range labelsAt[i] {
			fmt.Fprintf(&b, "%s:\n", name)
		}
		if i == len(program) {
			break
		}
		inst := program[i]
		switch inst.Op {
		case ADD, SUB, NAND, MUL:
			fmt.Fprintf(&b, "%s R%d,R%d,R%d\n", inst.Op, inst.RA, inst.RB, inst.RC)
		case LOAD, STORE:
			fmt.Fprintf(&b, "%s R%d,%d(R%d)\n", inst.Op, inst.RA, inst.Imm, inst.RB)
		case BEQ:
			fmt.Fprintf(&b, "BEQ R%d,R%d,%s\n", inst.RA, inst.RB, inst.Label)
		case CALL:
			fmt.Fprintf(&b, "CALL %s\n", inst.Label)
		case RET:
			b.WriteString("RET\n")
		}
	}
	return b.String()
}
