package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.simpledb/internal/logger"
	"go.simpledb/internal/metrics"
)

func openTestPager(t *testing.T, path string, maxPages int) (*Pager, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	pager, err := OpenPager(path, maxPages, logger.Nop(), m)
	require.NoError(t, err)
	return pager, m
}

func TestPagerZeroFillsNewPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pager.db")
	pager, m := openTestPager(t, path, 4)

	page, err := pager.GetPage(2)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, PageSize), page.Data)
	assert.Equal(t, uint32(3), pager.NumPages())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PageAllocs))

	again, err := pager.GetPage(2)
	require.NoError(t, err)
	assert.Same(t, page, again)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PageHits))

	require.NoError(t, pager.Close())
}

func TestPagerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pager.db")
	pager, _ := openTestPager(t, path, 4)

	for n := uint32(0); n < 2; n++ {
		page, err := pager.GetPage(n)
		require.NoError(t, err)
		copy(page.Data, []byte{byte('a' + n), 1, 2, 3})
	}
	require.NoError(t, pager.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2*PageSize), info.Size())

	pager, m := openTestPager(t, path, 4)
	assert.Equal(t, uint32(2), pager.NumPages())

	page, err := pager.GetPage(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{'b', 1, 2, 3}, page.Data[:4])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PageLoads))
	require.NoError(t, pager.Close())
}

func TestPagerOnlyFlushesResidentPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pager.db")
	pager, _ := openTestPager(t, path, 4)

	_, err := pager.GetPage(0)
	require.NoError(t, err)
	require.NoError(t, pager.Close())

	pager, m := openTestPager(t, path, 4)
	assert.False(t, pager.Resident(0))
	require.NoError(t, pager.Close())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PageFlushes))
}

func TestPagerPageOutOfBounds(t *testing.T) {
	pager, _ := openTestPager(t, filepath.Join(t.TempDir(), "pager.db"), 4)
	defer pager.Close()

	_, err := pager.GetPage(4)
	assert.ErrorIs(t, err, ErrPageOutOfBounds)
	assert.False(t, IsRecoverable(err))
}

func TestPagerFlushUnloaded(t *testing.T) {
	pager, _ := openTestPager(t, filepath.Join(t.TempDir(), "pager.db"), 4)
	defer pager.Close()

	err := pager.Flush(1)
	assert.ErrorIs(t, err, ErrFlushUnloaded)
}

func TestPagerRejectsPartialPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pager.db")
	require.NoError(t, os.WriteFile(path, make([]byte, PageSize+10), 0o600))

	_, err := OpenPager(path, 4, logger.Nop(), metrics.New())
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestPagerRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pager.db")
	require.NoError(t, os.WriteFile(path, make([]byte, 3*PageSize), 0o600))

	_, err := OpenPager(path, 2, logger.Nop(), metrics.New())
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestPagerClosed(t *testing.T) {
	pager, _ := openTestPager(t, filepath.Join(t.TempDir(), "pager.db"), 4)
	require.NoError(t, pager.Close())

	_, err := pager.GetPage(0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, pager.Close(), ErrClosed)
}

func TestPagerFlushWriteError(t *testing.T) {
	pager, m := openTestPager(t, filepath.Join(t.TempDir(), "pager.db"), 4)

	_, err := pager.GetPage(0)
	require.NoError(t, err)
	require.NoError(t, pager.file.Close())

	err = pager.Flush(0)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.False(t, IsRecoverable(err))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PageFlushes))
}

func TestPagerDiscardWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pager.db")
	pager, m := openTestPager(t, path, 4)

	page, err := pager.GetPage(0)
	require.NoError(t, err)
	copy(page.Data, []byte("dirty"))

	require.NoError(t, pager.discard())
	assert.False(t, pager.Resident(0))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ResidentPages))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PageFlushes))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())

	_, err = pager.GetPage(0)
	assert.ErrorIs(t, err, ErrClosed)
}
