package domain

import "strings"

// ToolName is the canonical name of the rclone executable
const ToolName = "rclone"

// Recognize finds the first rclone executable token immediately followed by
// an operation keyword. It returns the operation and the keyword's index.
func Recognize(tokens []string) (Operation, int, bool) {
	for i := 0; i < len(tokens)-1; i++ {
		if !strings.EqualFold(executableName(tokens[i]), ToolName) {
			continue
		}
		if op, ok := ParseOperation(tokens[i+1]); ok {
			return op, i + 1, true
		}
	}
	return OpCopy, -1, false
}

// executableName strips directories (either separator) and the extension
func executableName(token string) string {
	if i := strings.LastIndexAny(token, `/\`); i >= 0 {
		token = token[i+1:]
	}
	if i := strings.LastIndexByte(token, '.'); i > 0 {
		token = token[:i]
	}
	return token
}

// recognizeArgs finds the operation keyword in an argument vector that has
// no executable token, such as the output of BuildArgs. Leading flags are
// skipped (flags with a value skip their value too); the first token that is
// not a flag must be an operation keyword.
func recognizeArgs(args []string) (Operation, int, bool) {
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if _, ok := lookupVerbosityFlag(tok); ok {
			continue
		}
		if strings.HasPrefix(tok, "--") {
			if !strings.Contains(tok, "=") && takesValue(tok) && i+1 < len(args) {
				i++
			}
			continue
		}
		op, ok := ParseOperation(tok)
		return op, i, ok
	}
	return OpCopy, -1, false
}
