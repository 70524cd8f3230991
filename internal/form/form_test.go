package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromValues(t *testing.T) {
	v := url.Values{
		FieldDatabaseSize:    {"10TB"},
		FieldDowntimeWindow:  {""},
		FieldUpgradeRequired: {"No"},
		FieldIncludeNonProd:  {"Yes"},
		FieldTargetPlatform:  {"Autonomous Database"},
	}
	f := FromValues(v)

	assert.Equal(t, "10TB", f.DatabaseSize)
	assert.Equal(t, "", f.DowntimeWindow, "submitted empty text is kept")
	assert.False(t, f.UpgradeRequired)
	assert.True(t, f.IncludeNonProd)
	assert.Equal(t, "12.2", f.CurrentVersion, "missing field keeps default")
	assert.Equal(t, "19c", f.TargetVersion)
	assert.Equal(t, "Autonomous Database", f.TargetPlatform)
}

func TestFromValues_Empty(t *testing.T) {
	assert.Equal(t, Defaults(), FromValues(url.Values{}))
}

func TestYesNo(t *testing.T) {
	assert.True(t, IsYes("Yes"))
	assert.False(t, IsYes("yes please"))
	assert.False(t, IsYes("No"))
	assert.Equal(t, "Yes", YesNo(true))
	assert.Equal(t, "No", YesNo(false))
}
