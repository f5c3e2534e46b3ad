// this code is derived from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"os"

	"go.uber.org/zap"

	"github.com/pagepool/pagepool/common"
)

// managerTest wraps a Manager so a test can clean up the backing file
// (when there is one) on ShutDown.
type managerTest struct {
	Manager
	path string
}

// NewManagerForTest returns a Manager for use in tests: a
// temp-file-backed FileManager by default (common.EnableOnMemStorage
// is false), or an in-memory VirtualManager when it is true.
func NewManagerForTest() Manager {
	log := zap.NewNop()

	if common.EnableOnMemStorage {
		return NewVirtualManager(log)
	}

	f, err := os.CreateTemp("", "pagepool.")
	if err != nil {
		panic(err)
	}
	path := f.Name()
	f.Close()
	os.Remove(path)

	fm, err := NewFileManager(path, log)
	if err != nil {
		panic(err)
	}
	return &managerTest{Manager: fm, path: path}
}

// ShutDown closes the underlying manager and removes its backing file,
// if any.
func (d *managerTest) ShutDown() {
	d.Manager.ShutDown()
	os.Remove(d.path)
}
