package middleware_test

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"deal_analyzer/internal/transport/bot/middleware"
)

func TestSenderID(t *testing.T) {
	testCases := []struct {
		name       string
		update     telego.Update
		expectedID int64
		expectedOK bool
	}{
		{
			name:       "message",
			update:     telego.Update{Message: &telego.Message{From: &telego.User{ID: 42}}},
			expectedID: 42,
			expectedOK: true,
		},
		{
			name:       "channel post without sender",
			update:     telego.Update{Message: &telego.Message{}},
			expectedOK: false,
		},
		{
			name:       "callback",
			update:     telego.Update{CallbackQuery: &telego.CallbackQuery{From: telego.User{ID: 7}}},
			expectedID: 7,
			expectedOK: true,
		},
		{
			name:       "other",
			update:     telego.Update{},
			expectedOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			id, ok := middleware.SenderID(tc.update)
			rq.Equal(tc.expectedOK, ok)
			rq.Equal(tc.expectedID, id)
		})
	}
}
