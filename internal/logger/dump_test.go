package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSdumpSortsKeys(t *testing.T) {
	out := Sdump(map[string]int{"b": 2, "a": 1})
	if strings.Index(out, `"a"`) > strings.Index(out, `"b"`) {
		t.Errorf("keys not sorted:\n%s", out)
	}
}

func TestDumpOnlyAtDebug(t *testing.T) {
	saved := Log
	defer func() { Log = saved }()

	core, logs := observer.New(zap.InfoLevel)
	Log = zap.New(core)
	Dump("state", struct{ X int }{1})
	if logs.Len() != 0 {
		t.Fatalf("dump logged at info level")
	}

	core, logs = observer.New(zap.DebugLevel)
	Log = zap.New(core)
	Dump("state", struct{ X int }{1})
	if logs.Len() != 1 {
		t.Fatalf("got %d entries, want 1", logs.Len())
	}
	if dump := logs.All()[0].ContextMap()["dump"].(string); !strings.Contains(dump, "X: (int) 1") {
		t.Errorf("unexpected dump %q", dump)
	}
}
