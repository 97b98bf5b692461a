package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlow_GetStep(t *testing.T) {
	flow := &Flow{
		Steps: Steps{
			{StepCount: 1, Type: StepTypeWaitSubscriber},
			{StepCount: 2, Type: StepTypeSendMail},
		},
	}

	t.Run("finds a step by its 1-based count", func(t *testing.T) {
		step := flow.GetStep(2)
		require.NotNil(t, step)
		assert.Equal(t, StepTypeSendMail, step.Type)
	})

	t.Run("past the end returns nil", func(t *testing.T) {
		assert.Nil(t, flow.GetStep(3))
	})

	t.Run("zero returns nil", func(t *testing.T) {
		assert.Nil(t, flow.GetStep(0))
	})
}

func TestParseStepConfig(t *testing.T) {
	t.Run("decodes the typed config", func(t *testing.T) {
		step := &Step{
			Type:   StepTypeWaitSubscriber,
			Config: map[string]interface{}{"waitDuration": 3, "waitUnit": "days"},
		}
		cfg, err := ParseStepConfig[WaitStepConfig](step)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.WaitDuration)
		assert.Equal(t, "days", cfg.WaitUnit)
	})

	t.Run("extra keys are ignored", func(t *testing.T) {
		step := &Step{
			Type:   StepTypeMoveSubscriber,
			Config: map[string]interface{}{"targetListId": "list2", "legacyField": true},
		}
		cfg, err := ParseStepConfig[MoveStepConfig](step)
		require.NoError(t, err)
		assert.Equal(t, "list2", cfg.TargetListID)
	})

	t.Run("nil config decodes to zero values", func(t *testing.T) {
		step := &Step{Type: StepTypeSendMail}
		cfg, err := ParseStepConfig[MailStepConfig](step)
		require.NoError(t, err)
		assert.Empty(t, cfg.TemplateID)
	})

	t.Run("mismatched value types fail", func(t *testing.T) {
		step := &Step{
			Type:   StepTypeWaitSubscriber,
			Config: map[string]interface{}{"waitDuration": "tomorrow"},
		}
		_, err := ParseStepConfig[WaitStepConfig](step)
		assert.Error(t, err)
	})
}

func TestStep_ValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		step    *Step
		wantErr bool
	}{
		{
			name: "valid wait step",
			step: &Step{Type: StepTypeWaitSubscriber, Config: map[string]interface{}{"waitDuration": 1, "waitUnit": "days"}},
		},
		{
			name:    "wait step without unit",
			step:    &Step{Type: StepTypeWaitSubscriber, Config: map[string]interface{}{"waitDuration": 1}},
			wantErr: true,
		},
		{
			name: "valid webhook step",
			step: &Step{Type: StepTypeSendWebhook, Config: map[string]interface{}{"webhookUrl": "https://hooks.example.com/x"}},
		},
		{
			name:    "webhook step without url",
			step:    &Step{Type: StepTypeSendWebhook, Config: map[string]interface{}{}},
			wantErr: true,
		},
		{
			name:    "webhook step with bad method",
			step:    &Step{Type: StepTypeSendWebhook, Config: map[string]interface{}{"webhookUrl": "https://hooks.example.com/x", "method": "TELEPORT"}},
			wantErr: true,
		},
		{
			name: "valid mail step",
			step: &Step{Type: StepTypeSendMail, Config: map[string]interface{}{"templateId": "tpl1"}},
		},
		{
			name:    "mail step without template",
			step:    &Step{Type: StepTypeSendMail, Config: map[string]interface{}{}},
			wantErr: true,
		},
		{
			name: "valid move step",
			step: &Step{Type: StepTypeMoveSubscriber, Config: map[string]interface{}{"targetListId": "list2"}},
		},
		{
			name:    "move step without target",
			step:    &Step{Type: StepTypeMoveSubscriber, Config: map[string]interface{}{}},
			wantErr: true,
		},
		{
			name: "valid remove step",
			step: &Step{Type: StepTypeRemoveSubscriber, Config: map[string]interface{}{"listToRemoveFrom": "list1"}},
		},
		{
			name: "delete step needs no config",
			step: &Step{Type: StepTypeDeleteSubscriber},
		},
		{
			name:    "unknown step type",
			step:    &Step{Type: StepType("sendCarrierPigeon")},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.step.ValidateConfig()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlow_Validate(t *testing.T) {
	t.Run("valid flow", func(t *testing.T) {
		flow := &Flow{
			ID:         "flow1",
			CustomerID: "cust1",
			Name:       "Welcome Series",
			Steps: Steps{
				{StepCount: 1, Type: StepTypeWaitSubscriber, Config: map[string]interface{}{"waitDuration": 1, "waitUnit": "days"}},
				{StepCount: 2, Type: StepTypeDeleteSubscriber},
			},
		}
		assert.NoError(t, flow.Validate())
	})

	t.Run("step counts must be contiguous from 1", func(t *testing.T) {
		flow := &Flow{
			ID:         "flow1",
			CustomerID: "cust1",
			Name:       "Welcome Series",
			Steps: Steps{
				{StepCount: 1, Type: StepTypeDeleteSubscriber},
				{StepCount: 3, Type: StepTypeDeleteSubscriber},
			},
		}
		assert.Error(t, flow.Validate())
	})

	t.Run("invalid step config fails the flow", func(t *testing.T) {
		flow := &Flow{
			ID:         "flow1",
			CustomerID: "cust1",
			Name:       "Welcome Series",
			Steps: Steps{
				{StepCount: 1, Type: StepTypeSendMail, Config: map[string]interface{}{}},
			},
		}
		assert.Error(t, flow.Validate())
	})
}

func TestFlowStatsDelta(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		assert.True(t, FlowStatsDelta{}.IsZero())
		assert.False(t, FlowStatsDelta{EmailsSent: 1}.IsZero())
	})

	t.Run("add merges counters", func(t *testing.T) {
		d := FlowStatsDelta{EmailsSent: 1}
		d.Add(FlowStatsDelta{EmailsSent: 2, WebhooksSent: 1})
		assert.Equal(t, int64(3), d.EmailsSent)
		assert.Equal(t, int64(1), d.WebhooksSent)
	})
}
