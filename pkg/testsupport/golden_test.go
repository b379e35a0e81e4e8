package testsupport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-festoon/pkg/testsupport"
)

func TestWriteTree(t *testing.T) {
	root := testsupport.WriteTree(t, map[string]string{
		"a.txt":        "one",
		"nested/b.csv": "x\n1\n",
	})

	data, err := os.ReadFile(filepath.Join(root, "nested", "b.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "x\n1\n" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestAssertGolden(t *testing.T) {
	t.Setenv(testsupport.UpdateEnv, "")
	root := testsupport.WriteTree(t, map[string]string{"out.golden": "expected\n"})

	testsupport.AssertGolden(t, filepath.Join(root, "out.golden"), []byte("expected\n"))
}
