package levelcompiler

import (
	"fmt"

	"github.com/samber/oops"
)

// CodeSemantic is the oops code carried by every SemanticError.
const CodeSemantic = "COMPILE_SEMANTIC"

// SemanticError reports a well-formed source that cannot be compiled: an
// unknown name, an out-of-range number or a grid mismatch.
type SemanticError struct {
	Line    int
	Field   string
	Message string
}

func (e *SemanticError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	default:
		return e.Message
	}
}

func semantic(line int, field, format string, args ...any) error {
	return oops.Code(CodeSemantic).
		In("levelcompiler").
		With("line", line).
		With("field", field).
		Wrap(&SemanticError{Line: line, Field: field, Message: fmt.Sprintf(format, args...)})
}
