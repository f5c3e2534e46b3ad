// this code is derived from https://github.com/ryogrid/SamehadaDB and
// https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

// Package testing_assert is the teacher's own thin assertion helper,
// kept for the handful of tests written in its exact idiom. Newer
// tests in this module use testify instead.
package testing_assert

import (
	"fmt"
	"reflect"
	"testing"
)

// Ok fails the test immediately if err is not nil.
func Ok(tb testing.TB, err error) {
	if err != nil {
		tb.Fatalf("unexpected error: %s", err.Error())
	}
}

// Assert fails the test immediately if condition is false.
func Assert(tb testing.TB, condition bool, msg string, v ...interface{}) {
	if !condition {
		tb.Fatalf("assert failed: "+msg, v...)
	}
}

// Equals fails the test immediately if exp is not equal to act.
func Equals(tb testing.TB, exp, act interface{}) {
	if !reflect.DeepEqual(exp, act) {
		tb.Fatalf(fmt.Sprintf("exp: %#v\n\ngot: %#v\n", exp, act))
	}
}
