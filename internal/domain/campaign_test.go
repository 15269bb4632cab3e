package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaignStateProgression(t *testing.T) {
	state := NewCampaignState()
	assert.Equal(t, CampaignNotCreated, state.Status)
	assert.True(t, state.CanCreate())
	assert.False(t, state.CanUpdate())
	assert.False(t, state.CanSendTest())
	assert.False(t, state.CanSendFinal())

	state = CampaignState{CampaignID: "cmp-1", Status: CampaignCreated}
	assert.False(t, state.CanCreate())
	assert.True(t, state.CanUpdate())
	assert.True(t, state.CanSendTest())
	assert.True(t, state.CanSendFinal())

	state.Status = CampaignTestSent
	assert.True(t, state.CanUpdate())
	assert.True(t, state.CanSendTest())
	assert.True(t, state.CanSendFinal())

	state.Status = CampaignSent
	assert.True(t, state.Terminal())
	assert.False(t, state.CanCreate())
	assert.False(t, state.CanUpdate())
	assert.False(t, state.CanSendTest())
	assert.False(t, state.CanSendFinal())
}

func TestCampaignStateErrorKeepsID(t *testing.T) {
	state := CampaignState{CampaignID: "cmp-1", Status: CampaignCreated}
	failed := state.WithError("provider timeout")

	assert.Equal(t, CampaignError, failed.Status)
	assert.Equal(t, "cmp-1", failed.CampaignID)
	assert.Equal(t, "provider timeout", failed.LastError)

	// with an id, error allows retrying everything except create
	assert.False(t, failed.CanCreate())
	assert.True(t, failed.CanUpdate())
	assert.True(t, failed.CanSendTest())
	assert.True(t, failed.CanSendFinal())
}

func TestCampaignStateErrorWithoutIDAllowsCreateOnly(t *testing.T) {
	failed := NewCampaignState().WithError("create failed")

	assert.Empty(t, failed.CampaignID)
	assert.True(t, failed.CanCreate())
	assert.False(t, failed.CanUpdate())
	assert.False(t, failed.CanSendTest())
	assert.False(t, failed.CanSendFinal())
}
