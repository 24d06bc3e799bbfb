package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-tokenizer/internal/models"
)

func testRecord(id, tokenID string, status models.TokenStatus) *models.TokenRecord {
	now := time.Now()
	return &models.TokenRecord{
		RecordID:    id,
		TokenID:     tokenID,
		Status:      status,
		Brand:       "Visa",
		Last4:       "4242",
		CreatedDate: now,
		UpdatedDate: now,
	}
}

func TestInMemoryStoreSaveAndGet(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.SaveRecord(testRecord("rec_1", "tok_1", models.StatusCreated)))

	record, err := store.GetRecord("rec_1")
	require.NoError(t, err)
	assert.Equal(t, "tok_1", record.TokenID)

	_, err = store.GetRecord("rec_missing")
	assert.Error(t, err)
}

func TestInMemoryStoreGetByTokenID(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.SaveRecord(testRecord("rec_1", "tok_1", models.StatusCreated)))
	require.NoError(t, store.SaveRecord(testRecord("rec_2", "", models.StatusFailed)))

	record, err := store.GetRecordByTokenID("tok_1")
	require.NoError(t, err)
	assert.Equal(t, "rec_1", record.RecordID)

	// An empty token id never matches, even though failed records carry one.
	_, err = store.GetRecordByTokenID("")
	assert.Error(t, err)
}

func TestInMemoryStoreUpdate(t *testing.T) {
	store := NewInMemoryStore()

	record := testRecord("rec_1", "tok_1", models.StatusCreated)
	require.NoError(t, store.SaveRecord(record))

	record.Status = models.StatusConsumed
	require.NoError(t, store.UpdateRecord(record))

	updated, err := store.GetRecord("rec_1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConsumed, updated.Status)

	assert.Error(t, store.UpdateRecord(testRecord("rec_missing", "tok_x", models.StatusCreated)))
}

func TestInMemoryStoreList(t *testing.T) {
	store := NewInMemoryStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveRecord(testRecord(fmt.Sprintf("rec_%d", i), fmt.Sprintf("tok_%d", i), models.StatusCreated)))
	}
	require.NoError(t, store.SaveRecord(testRecord("rec_failed", "", models.StatusFailed)))

	created, err := store.ListRecords(models.StatusCreated, 10, 0)
	require.NoError(t, err)
	assert.Len(t, created, 5)

	failed, err := store.ListRecords(models.StatusFailed, 10, 0)
	require.NoError(t, err)
	assert.Len(t, failed, 1)

	all, err := store.ListRecords("", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	limited, err := store.ListRecords(models.StatusCreated, 2, 0)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := store.ListRecords(models.StatusConsumed, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
