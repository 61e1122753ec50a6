/*
 * errors_test.go
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package qm9

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTrail(t *testing.T) {
	_, err := Collate(nil)
	var qerr Error
	require.ErrorAs(t, err, &qerr)
	assert.True(t, qerr.Critical())
	assert.Equal(t, EmptyBatch, qerr.Message())
	assert.Equal(t, "qm9: Collate: "+EmptyBatch, err.Error())

	deco := decorate(err, "Batch")
	assert.Equal(t, "qm9: Collate: Batch: "+EmptyBatch, deco.Error())
	assert.Equal(t, []string{"Collate", "Batch", "Again"}, deco.(Error).Decorate("Again"))

	plain := assert.AnError
	assert.Equal(t, plain, decorate(plain, "Batch"))
}
