package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abernard/procvm/pkg/machine"
)

// ReadEmbedded reads the paste-ready listing pkg/disasm.FormatLiteral
// produces — the Go-native equivalent of the original dump_memory's
// stdout output, meant to be embedded back into a program rather than
// read from a binary file. The format is line-oriented:
//
//	Instruction text[] = {
//	    0x00000000, 0x00000001,
//	};
//	unsigned textsize = 2
//
//	Word data[] = {
//	    0x00000005,
//	};
//	unsigned datasize = 17
//	unsigned dataend = 1
//
// Hex words are whatever strconv.ParseUint(s, 0, 32) accepts; commas
// and blank lines are ignored, and an "unsigned X = N" line closes
// out whichever array preceded it.
func ReadEmbedded(r io.Reader) (*machine.Machine, error) {
	scanner := bufio.NewScanner(r)
	var rawText, rawData []uint32
	var dataend uint32
	inText, inData := false, false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "Instruction"):
			inText, inData = true, false
			continue
		case strings.HasPrefix(line, "Word"):
			inText, inData = false, true
			continue
		case strings.HasPrefix(line, "unsigned dataend"):
			v, err := parseAssignment(line)
			if err != nil {
				return nil, err
			}
			dataend = uint32(v)
			inText, inData = false, false
			continue
		case strings.HasPrefix(line, "unsigned"):
			// textsize/datasize are redundant with len(rawText)/len(rawData);
			// recorded by the writer for readability only.
			inText, inData = false, false
			continue
		case line == "" || line == "};" || line == "}":
			inText, inData = false, false
			continue
		}
		for _, tok := range strings.Split(line, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseUint(tok, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("loader: parsing embedded word %q: %w", tok, err)
			}
			switch {
			case inText:
				rawText = append(rawText, uint32(v))
			case inData:
				rawData = append(rawData, uint32(v))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: reading embedded listing: %w", err)
	}

	text := make([]machine.Instruction, len(rawText))
	for i, w := range rawText {
		text[i] = machine.DecodeFields(machine.Word(w))
	}
	data := make([]machine.Word, len(rawData))
	for i, w := range rawData {
		data[i] = machine.Word(w)
	}
	return machine.New(text, data, dataend), nil
}

func parseAssignment(line string) (uint64, error) {
	idx := strings.LastIndex(line, "=")
	if idx < 0 {
		return 0, fmt.Errorf("loader: malformed assignment line %q", line)
	}
	return strconv.ParseUint(strings.TrimSpace(line[idx+1:]), 10, 32)
}
