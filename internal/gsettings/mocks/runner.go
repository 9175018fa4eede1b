// Package mocks holds scripted test doubles for the gsettings package.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

// Runner is a mock type for the gsettings.Runner type
type Runner struct {
	mock.Mock
}

// Run provides a mock function with given fields: args
func (_m *Runner) Run(args []string) ([]byte, error) {
	ret := _m.Called(args)

	var r0 []byte
	if rf, ok := ret.Get(0).(func([]string) []byte); ok {
		r0 = rf(args)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func([]string) error); ok {
		r1 = rf(args)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CalledArgs returns the argument vector of every Run call, in call order.
func (_m *Runner) CalledArgs() [][]string {
	out := make([][]string, 0, len(_m.Calls))
	for _, c := range _m.Calls {
		if c.Method != "Run" {
			continue
		}
		out = append(out, c.Arguments.Get(0).([]string))
	}
	return out
}
