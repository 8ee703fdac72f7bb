package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/util"
)

func TestFormatDateTime(t *testing.T) {
	d, err := model.ParseDateTime("2024-03-01T08:05:09")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01 08:05:09", util.FormatDateTime(d))
	assert.Equal(t, "2024-03-01", util.FormatDate(d))
	assert.Empty(t, util.FormatDateTime(model.DateTime{}))
	assert.Empty(t, util.FormatDate(model.DateTime{}))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{-10, "0 B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{5452595, "5.2 MB"},
		{1073741824, "1 GB"},
		{1649267441664, "1536 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, util.FormatFileSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "B-001", util.BatchLabel(model.Batch{BatchID: 1, BatchNumber: "B-001"}))
	assert.Equal(t, "Batch 7", util.BatchLabel(model.Batch{BatchID: 7}))
	assert.Equal(t, "Alice (ID: 3)", util.PersonLabel(model.Person{PersonID: 3, PersonName: "Alice"}))
}
