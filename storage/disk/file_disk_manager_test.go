// this code is derived from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"testing"

	"github.com/pagepool/pagepool/common"
	"github.com/pagepool/pagepool/testing/testing_assert"
)

func TestFileManager_ReadWritePage(t *testing.T) {
	dm := NewManagerForTest()
	defer dm.ShutDown()

	data := make([]byte, common.PageSize)
	buffer := make([]byte, common.PageSize)

	copy(data, "A test string.")

	testing_assert.Ok(t, dm.ReadPage(0, buffer)) // tolerate never-written read
	testing_assert.Ok(t, dm.WritePage(0, data))
	testing_assert.Ok(t, dm.ReadPage(0, buffer))
	testing_assert.Equals(t, data, buffer)

	memset(buffer, 0)
	copy(data, "Another test string.")

	testing_assert.Ok(t, dm.WritePage(5, data))
	testing_assert.Ok(t, dm.ReadPage(5, buffer))
	testing_assert.Equals(t, data, buffer)

	testing_assert.Assert(t, dm.GetNumWrites() == 2, "expected 2 writes, got %d", dm.GetNumWrites())
}

func memset(buffer []byte, value byte) {
	for i := range buffer {
		buffer[i] = value
	}
}
