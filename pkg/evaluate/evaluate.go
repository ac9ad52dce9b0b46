// Package evaluate provides the expression-evaluation capability consumed
// by calculate fields. The engine is an injected collaborator behind a
// narrow interface; the default implementation runs expressions on a goja
// JavaScript runtime.
package evaluate

import (
	"fmt"
	"regexp"

	"github.com/dop251/goja"
)

// Engine evaluates an expression against a set of alias bindings
type Engine interface {
	// Evaluate binds every alias to its value and evaluates the expression
	Evaluate(expression string, bindings map[string]interface{}) (interface{}, error)
}

// templateRef matches {{ alias }} style references inside a formula
var templateRef = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// NormalizeFormula rewrites {{ alias }} template references into bare
// identifiers so both formula styles evaluate the same way
func NormalizeFormula(formula string) string {
	return templateRef.ReplaceAllString(formula, "$1")
}

// reservedWords are identifiers that cannot be used as aliases because the
// runtime claims them
var reservedWords = map[string]struct{}{}

func init() {
	for _, word := range []string{
		"break", "case", "catch", "class", "const", "continue", "debugger",
		"default", "delete", "do", "else", "enum", "export", "extends",
		"false", "finally", "for", "function", "if", "import", "in",
		"instanceof", "let", "new", "null", "of", "return", "super",
		"switch", "this", "throw", "true", "try", "typeof", "undefined",
		"var", "void", "while", "with", "yield",
		// globals the runtime provides
		"Math", "JSON", "Date", "String", "Number", "Boolean", "Array", "Object",
	} {
		reservedWords[word] = struct{}{}
	}
}

// IsReservedWord reports whether the alias collides with a runtime keyword
// or built-in global
func IsReservedWord(alias string) bool {
	_, ok := reservedWords[alias]
	return ok
}

// gojaEngine evaluates expressions on a single goja runtime. Not safe for
// concurrent use; build one engine per supplier tree.
type gojaEngine struct {
	vm *goja.Runtime
}

// NewEngine creates the default JavaScript-backed evaluation engine
func NewEngine() Engine {
	return &gojaEngine{vm: goja.New()}
}

// Evaluate implements Engine
func (e *gojaEngine) Evaluate(expression string, bindings map[string]interface{}) (interface{}, error) {
	for alias, value := range bindings {
		if err := e.vm.Set(alias, value); err != nil {
			return nil, fmt.Errorf("failed to bind alias %s: %w", alias, err)
		}
	}

	result, err := e.vm.RunString(NormalizeFormula(expression))
	if err != nil {
		return nil, fmt.Errorf("formula evaluation failed: %w", err)
	}
	return result.Export(), nil
}
