// Package parser reads the text-format machine definition described in
// spec §6.1: a line-oriented, whitespace-tokenized format with seven
// logical sections for a single-tape machine, or a `MULTICINTA <k>` header
// followed by the same six non-transition sections and comma-tupled
// transitions for a k-tape machine.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/asphodex/tmsim/internal/machine"
	"github.com/asphodex/tmsim/internal/movement"
	"github.com/asphodex/tmsim/internal/transition"
	"go.uber.org/zap"
)

// logicalLine is one non-comment, non-blank line with its 1-indexed
// original source line number and whitespace-split fields.
type logicalLine struct {
	number int
	fields []string
}

// Parser reads machine definition files. The zero value is not usable;
// construct with New.
type Parser struct {
	logger    *zap.Logger
	lastError error
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithLogger attaches a structured logger used for diagnostics only.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// LastError returns the error from the most recent Parse/ParseFile call, or
// nil. It is reset at the start of every top-level call (spec §9's "global
// state" note): a stale diagnostic never survives into the next parse.
func (p *Parser) LastError() error {
	return p.lastError
}

// ParseFile opens path, parses it, and closes the file on every control
// path, including failure, grounded on the teacher's scoped
// filereader.ReadFileCtx.
func (p *Parser) ParseFile(path string) (*machine.Machine, error) {
	clean := filepath.Clean(path)

	file, err := os.Open(clean)
	if err != nil {
		err = fmt.Errorf("parser: open %q: %w", clean, err)
		p.lastError = err

		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	return p.Parse(file)
}

// Parse auto-detects mono vs. MULTICINTA multi format by peeking the first
// logical line, then dispatches to the matching section reader.
func (p *Parser) Parse(r io.Reader) (*machine.Machine, error) {
	p.lastError = nil

	lines, err := scanLogicalLines(r)
	if err != nil {
		return p.fail(err)
	}

	if len(lines) == 0 {
		return p.fail(ErrEmptyFile)
	}

	if len(lines[0].fields) > 0 && lines[0].fields[0] == "MULTICINTA" {
		m, err := p.parseMulti(lines)
		if err != nil {
			return p.fail(err)
		}

		return m, nil
	}

	m, err := p.parseMono(lines)
	if err != nil {
		return p.fail(err)
	}

	return m, nil
}

func (p *Parser) fail(err error) (*machine.Machine, error) {
	p.lastError = err
	p.logger.Error("parse failed", zap.Error(err))

	return nil, err
}

// scanLogicalLines strips comments (lines whose first non-whitespace
// character is '#') and blank lines, returning the rest with their
// original 1-indexed line numbers and whitespace-split fields.
func scanLogicalLines(r io.Reader) ([]logicalLine, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []logicalLine

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		lines = append(lines, logicalLine{number: lineNo, fields: strings.Fields(trimmed)})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parser: read: %w", err)
	}

	return lines, nil
}

// resolveSymbol maps a single-character token, or one of the recognized
// aliases, to the byte it denotes.
func resolveSymbol(line int, token string) (byte, error) {
	switch token {
	case "espacio", "space":
		return ' ', nil
	}

	if len(token) == 1 {
		return token[0], nil
	}

	return 0, newParseError(line, "%w: %q", ErrUnknownSymbolToken, token)
}

// parseMono builds a mono (k=1) machine from the 7-section format.
func (p *Parser) parseMono(lines []logicalLine) (*machine.Machine, error) {
	if len(lines) < 6 {
		return nil, newParseError(lines[len(lines)-1].number, "%w: mono format needs 6 header sections before transitions, got %d lines total", ErrSectionCount, len(lines))
	}

	b := machine.NewMachineBuilder(1)

	statesLine := lines[0]
	for _, tok := range statesLine.fields {
		b.AddState(tok)
	}

	inputLine := lines[1]
	for _, tok := range inputLine.fields {
		sym, err := resolveSymbol(inputLine.number, tok)
		if err != nil {
			return nil, err
		}

		if _, err := b.AddInputSymbol(sym); err != nil {
			return nil, newParseError(inputLine.number, "%w", err)
		}
	}

	tapeLine := lines[2]
	for _, tok := range tapeLine.fields {
		sym, err := resolveSymbol(tapeLine.number, tok)
		if err != nil {
			return nil, err
		}

		b.AddTapeSymbol(sym)
	}

	initialLine := lines[3]
	if len(initialLine.fields) != 1 {
		return nil, newParseError(initialLine.number, "initial state section must carry exactly one token, got %d", len(initialLine.fields))
	}

	b.SetInitialState(initialLine.fields[0])

	blankLine := lines[4]
	if len(blankLine.fields) != 1 {
		return nil, newParseError(blankLine.number, "blank symbol section must carry exactly one token, got %d", len(blankLine.fields))
	}

	blank, err := resolveSymbol(blankLine.number, blankLine.fields[0])
	if err != nil {
		return nil, err
	}

	if err := b.SetBlank(blank); err != nil {
		return nil, newParseError(blankLine.number, "%w", err)
	}

	acceptLine := lines[5]
	for _, tok := range acceptLine.fields {
		b.AddAcceptState(tok)
	}

	for _, ln := range lines[6:] {
		if len(ln.fields) != 5 {
			return nil, newParseError(ln.number, "%w: expected 5 fields (from read to write move), got %d", ErrTransitionFields, len(ln.fields))
		}

		from, readTok, to, writeTok, moveTok := ln.fields[0], ln.fields[1], ln.fields[2], ln.fields[3], ln.fields[4]

		read, err := resolveSymbol(ln.number, readTok)
		if err != nil {
			return nil, err
		}

		write, err := resolveSymbol(ln.number, writeTok)
		if err != nil {
			return nil, err
		}

		mv, ok := movement.Parse(moveTok)
		if !ok {
			return nil, newParseError(ln.number, "%w: %q", ErrUnknownMovement, moveTok)
		}

		t := transition.NewMono(from, read, to, write, mv)
		if err := b.AddTransition(t); err != nil {
			return nil, newParseError(ln.number, "%w", err)
		}
	}

	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("parser: validation: %w", err)
	}

	return m, nil
}

// Save re-serializes a mono (k=1) machine back into the 7-section text
// format. It is a library-level convenience; the CLI never calls it, since
// spec §6.2 names no save flag.
func (p *Parser) Save(m *machine.Machine, w io.Writer) error {
	if m.TapeCount() != 1 {
		return fmt.Errorf("parser: Save only supports mono (k=1) machines, got k=%d", m.TapeCount())
	}

	bw := bufio.NewWriter(w)

	writeSymbolLine(bw, sortedStates(m.States()))
	writeByteLine(bw, sortedBytes(m.InputAlphabet()))
	writeByteLine(bw, sortedBytes(m.TapeAlphabet()))
	fmt.Fprintln(bw, m.InitialState())
	fmt.Fprintln(bw, symbolToken(m.Blank()))
	writeSymbolLine(bw, sortedStates(m.AcceptStates()))

	for _, t := range sortedTransitions(m) {
		fmt.Fprintf(bw, "%s %s %s %s %s\n", t.FromState, symbolToken(t.ReadSymbols[0]), t.ToState, symbolToken(t.WriteSymbols[0]), t.Movements[0])
	}

	return bw.Flush()
}

// symbolToken renders a byte the way resolveSymbol expects to read it back:
// the blank byte round-trips through the "espacio" alias rather than a bare
// space, which strings.Fields would otherwise swallow as a separator.
func symbolToken(b byte) string {
	if b == ' ' {
		return "espacio"
	}

	return string(b)
}

func writeSymbolLine(w *bufio.Writer, toks []string) {
	fmt.Fprintln(w, strings.Join(toks, " "))
}

func writeByteLine(w *bufio.Writer, syms []byte) {
	toks := make([]string, len(syms))
	for i, s := range syms {
		toks[i] = symbolToken(s)
	}

	writeSymbolLine(w, toks)
}

func sortedStates(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}

	sort.Strings(out)

	return out
}

func sortedBytes(set map[byte]struct{}) []byte {
	out := make([]byte, 0, len(set))
	for s := range set {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func sortedTransitions(m *machine.Machine) []transition.MultiTransition {
	// Machine exposes lookup only by (state, read); reconstruct the listing
	// by walking every declared state and every tape symbol it might read.
	var out []transition.MultiTransition

	for state := range m.States() {
		for sym := range m.TapeAlphabet() {
			if t, ok := m.Transition(state, []byte{sym}); ok {
				out = append(out, t)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FromState != out[j].FromState {
			return out[i].FromState < out[j].FromState
		}

		return out[i].ReadSymbols[0] < out[j].ReadSymbols[0]
	})

	return out
}

// parseMulti builds a k-tape machine from the MULTICINTA format.
func (p *Parser) parseMulti(lines []logicalLine) (*machine.Machine, error) {
	header := lines[0]
	if len(header.fields) != 2 {
		return nil, newParseError(header.number, "MULTICINTA header must carry exactly one tape-count token")
	}

	k, err := strconv.Atoi(header.fields[1])
	if err != nil || k < 1 {
		return nil, newParseError(header.number, "MULTICINTA tape count must be a positive integer, got %q", header.fields[1])
	}

	body := lines[1:]
	if len(body) < 6 {
		return nil, newParseError(header.number, "%w: multi format needs 6 header sections after MULTICINTA, got %d", ErrSectionCount, len(body))
	}

	b := machine.NewMachineBuilder(k)

	statesLine := body[0]
	for _, tok := range statesLine.fields {
		b.AddState(tok)
	}

	inputLine := body[1]
	for _, tok := range inputLine.fields {
		sym, err := resolveSymbol(inputLine.number, tok)
		if err != nil {
			return nil, err
		}

		if _, err := b.AddInputSymbol(sym); err != nil {
			return nil, newParseError(inputLine.number, "%w", err)
		}
	}

	tapeLine := body[2]
	for _, tok := range tapeLine.fields {
		sym, err := resolveSymbol(tapeLine.number, tok)
		if err != nil {
			return nil, err
		}

		b.AddTapeSymbol(sym)
	}

	initialLine := body[3]
	if len(initialLine.fields) != 1 {
		return nil, newParseError(initialLine.number, "initial state section must carry exactly one token, got %d", len(initialLine.fields))
	}

	b.SetInitialState(initialLine.fields[0])

	blankLine := body[4]
	if len(blankLine.fields) != 1 {
		return nil, newParseError(blankLine.number, "blank symbol section must carry exactly one token, got %d", len(blankLine.fields))
	}

	blank, err := resolveSymbol(blankLine.number, blankLine.fields[0])
	if err != nil {
		return nil, err
	}

	if err := b.SetBlank(blank); err != nil {
		return nil, newParseError(blankLine.number, "%w", err)
	}

	acceptLine := body[5]
	for _, tok := range acceptLine.fields {
		b.AddAcceptState(tok)
	}

	for _, ln := range body[6:] {
		if len(ln.fields) != 5 {
			return nil, newParseError(ln.number, "%w: expected 5 fields (from r1,..,rk to w1,..,wk m1,..,mk), got %d", ErrTransitionFields, len(ln.fields))
		}

		from, readTok, to, writeTok, moveTok := ln.fields[0], ln.fields[1], ln.fields[2], ln.fields[3], ln.fields[4]

		readToks := strings.Split(readTok, ",")
		writeToks := strings.Split(writeTok, ",")
		moveToks := strings.Split(moveTok, ",")

		if len(readToks) != k || len(writeToks) != k || len(moveToks) != k {
			return nil, newParseError(ln.number, "%w: tape count is %d, got %d read, %d write, %d move", ErrTupleLength, k, len(readToks), len(writeToks), len(moveToks))
		}

		read := make([]byte, k)
		write := make([]byte, k)
		moves := make([]movement.Movement, k)

		for i := 0; i < k; i++ {
			rs, err := resolveSymbol(ln.number, readToks[i])
			if err != nil {
				return nil, err
			}

			ws, err := resolveSymbol(ln.number, writeToks[i])
			if err != nil {
				return nil, err
			}

			mv, ok := movement.Parse(moveToks[i])
			if !ok {
				return nil, newParseError(ln.number, "%w: %q", ErrUnknownMovement, moveToks[i])
			}

			read[i] = rs
			write[i] = ws
			moves[i] = mv
		}

		t, err := transition.New(from, read, to, write, moves)
		if err != nil {
			return nil, newParseError(ln.number, "%w", err)
		}

		if err := b.AddTransition(t); err != nil {
			return nil, newParseError(ln.number, "%w", err)
		}
	}

	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("parser: validation: %w", err)
	}

	return m, nil
}
