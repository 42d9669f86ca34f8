// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The average itself is computed by the database; these tests pin down how
// the aggregate column travels from the row into the entity.

func TestScanTitle_RatingAndCategory(t *testing.T) {
	rating := 8.3
	catID := 2
	catName := "Music"
	catSlug := "music"

	scanned, err := scanTitle(func(dest ...any) error {
		*(dest[0].(*int)) = 7
		*(dest[1].(*string)) = "Dookie"
		*(dest[2].(*int)) = 1994
		*(dest[3].(**string)) = nil
		*(dest[4].(*time.Time)) = time.Now()
		*(dest[5].(*time.Time)) = time.Now()
		*(dest[6].(**float64)) = &rating
		*(dest[7].(**int)) = &catID
		*(dest[8].(**string)) = &catName
		*(dest[9].(**string)) = &catSlug
		return nil
	})
	require.NoError(t, err)

	require.NotNil(t, scanned.Rating)
	assert.InDelta(t, 8.3, *scanned.Rating, 0.001)
	require.NotNil(t, scanned.Category)
	assert.Equal(t, "music", scanned.Category.Slug)
}

func TestScanTitle_NullRatingAndCategory(t *testing.T) {
	scanned, err := scanTitle(func(dest ...any) error {
		*(dest[0].(*int)) = 7
		*(dest[1].(*string)) = "Dookie"
		*(dest[2].(*int)) = 1994
		// Aggregate and category columns stay NULL: no reviews, no category.
		return nil
	})
	require.NoError(t, err)

	assert.Nil(t, scanned.Rating, "a title without reviews has no rating")
	assert.Nil(t, scanned.Category)
	assert.NotNil(t, scanned.Genres, "genres hydrate to an empty list, not null")
}
