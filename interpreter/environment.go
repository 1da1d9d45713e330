package interpreter

import (
	"fmt"
	"nilan/object"
	"nilan/token"
)

// getVar looks a variable up in env by its token, producing a RuntimeError
// with source position when it is undefined.
func getVar(env *object.Env, name token.Token) (object.Value, error) {
	value, ok := env.Get(name.Lexeme)
	if ok {
		return value, nil
	}
	msg := fmt.Sprintf("Undefined variable: %s", name.Lexeme)
	return nil, CreateRuntimeError(name.Line, name.Column, msg)
}

// assignVar rebinds an already-declared variable by its token, producing a
// RuntimeError when it was never declared or is const.
func assignVar(env *object.Env, name token.Token, value object.Value) error {
	declared, excErr := env.Assign(name.Lexeme, value)
	if excErr != nil {
		return CreateRuntimeError(name.Line, name.Column, excErr.Message)
	}
	if !declared {
		msg := fmt.Sprintf("Undefined variable: %s", name.Lexeme)
		return CreateRuntimeError(name.Line, name.Column, msg)
	}
	return nil
}
