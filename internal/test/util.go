package test

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/alecthomas/repr"

	"github.com/csskit/csskit/internal/logger"
)

func AssertEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		t.Fatalf("%v != %v", a, b)
	}
}

func AssertEqualWithDiff(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		stringA := fmt.Sprintf("%v", a)
		stringB := fmt.Sprintf("%v", b)
		if strings.Contains(stringA, "\n") {
			color := runtime.GOOS != "windows"
			t.Fatal(Diff(stringB, stringA, color))
		} else {
			t.Fatalf("%v != %v", a, b)
		}
	}
}

// AssertSameStructure compares two values by their rendered structure, which
// gives a readable diff for deeply nested syntax trees.
func AssertSameStructure(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	reprA := repr.String(a, repr.Indent("  "), repr.OmitEmpty(true))
	reprB := repr.String(b, repr.Indent("  "), repr.OmitEmpty(true))
	AssertEqualWithDiff(t, reprA, reprB)
}

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:      0,
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
}
