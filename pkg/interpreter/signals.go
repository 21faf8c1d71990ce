package interpreter

import "github.com/AlenVelocity/MeowScript/pkg/runtime"

// Control flow travels up the evaluator as error values so every
// (runtime.Value, error) return propagates it without extra plumbing.

type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}

type breakSignal struct{}

func (breakSignal) Error() string {
	return "break"
}

type continueSignal struct{}

func (continueSignal) Error() string {
	return "continue"
}
