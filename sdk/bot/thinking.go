package bot

import (
	"fmt"
	"strings"
)

// thinking accumulates the reasons behind a play's priority
type thinking struct {
	thoughts []string
}

func (t *thinking) add(format string, args ...any) {
	t.thoughts = append(t.thoughts, fmt.Sprintf(format, args...))
}

func (t *thinking) String() string {
	if len(t.thoughts) == 0 {
		return "No clear reasoning available"
	}
	return strings.Join(t.thoughts, "; ")
}
