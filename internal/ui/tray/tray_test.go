package tray

import (
	"testing"

	"phasewatch/internal/core/model"
	"phasewatch/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabel(t *testing.T) {
	i18n.SetLang("en")
	assert.Equal(t, "Phase 2-1 · Devices 0/4", StatusLabel(0, 0, 4))
	assert.Equal(t, "Phase 2-3 · Devices 4/4", StatusLabel(2, 4, 4))
}

func TestActionItemsFollowActiveState(t *testing.T) {
	i18n.SetLang("en")
	var got []model.Action
	manager := New(nil, Callbacks{OnAction: func(action model.Action) { got = append(got, action) }})
	require.Len(t, manager.actionItems, len(model.Actions))
	for _, item := range manager.actionItems {
		assert.True(t, item.Disabled)
	}

	manager.SetActive(true)
	assert.True(t, manager.Active())
	for _, item := range manager.actionItems {
		assert.False(t, item.Disabled)
	}

	manager.actionItems[3].Action()
	manager.actionItems[len(model.Actions)-1].Action()
	assert.Equal(t, []model.Action{model.ActionBind10, model.ActionCloseOverlay}, got)

	manager.SetStatus(StatusLabel(1, 2, 4))
	assert.Equal(t, "Phase 2-2 · Devices 2/4", manager.statusItem.Label)
}
