package main

import (
	"bytes"
	"errors"
	"route-optimizer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func sampleItinerary() *domain.Itinerary {
	return &domain.Itinerary{Stops: []domain.ItineraryStop{
		{StopNumber: 1, Label: "Depot"},
		{StopNumber: 2, Label: "Depot"},
	}}
}

func TestWriteItineraryClosesOutput(t *testing.T) {
	out := &closeRecorder{}

	require.NoError(t, writeItinerary(out, sampleItinerary()))
	assert.True(t, out.closed)
	assert.Equal(t, "stop_number,label,stop_time_minutes\n1,Depot,\n2,Depot,\n", out.String())
}

func TestWriteItineraryReportsCloseError(t *testing.T) {
	diskFull := errors.New("no space left on device")
	out := &closeRecorder{closeErr: diskFull}

	err := writeItinerary(out, sampleItinerary())
	assert.ErrorIs(t, err, diskFull)
}

func TestWriteItineraryClosesOnWriteError(t *testing.T) {
	out := &closeRecorder{}

	assert.Error(t, writeItinerary(out, nil))
	assert.True(t, out.closed)
}
