package main

import (
	"github.com/ezrec/hackasm/translate"
)

var f = translate.From

// ErrUsage reports unexpected command line arguments.
type ErrUsage []string

func (err ErrUsage) Error() string {
	return f("expected one .asm file, got %v", []string(err))
}

// ErrFile names the file an error occurred in.
type ErrFile struct {
	Name string
	Err  error
}

func (err ErrFile) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err ErrFile) Unwrap() error {
	return err.Err
}

// ErrDefine names a rejected -D predefine.
type ErrDefine struct {
	Name string
	Err  error
}

func (err ErrDefine) Error() string {
	return f("-D %v: %v", err.Name, err.Err)
}

func (err ErrDefine) Unwrap() error {
	return err.Err
}
