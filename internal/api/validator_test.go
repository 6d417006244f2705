package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomValidator(t *testing.T) {
	cv := NewValidator()
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestRequestRules(t *testing.T) {
	cv := NewValidator()

	require.NoError(t, cv.Validate(&LoginRequest{LoginID: "miso", Password: "adminmiso"}))
	require.Error(t, cv.Validate(&LoginRequest{LoginID: "mi so", Password: "adminmiso"}))
	require.Error(t, cv.Validate(&LoginRequest{LoginID: "miso", Password: "short"}))

	require.NoError(t, cv.Validate(&CreateUserRequest{Nickname: "미소", LoginID: "miso", Password: "adminmiso"}))
	require.Error(t, cv.Validate(&CreateUserRequest{Nickname: "   ", LoginID: "miso", Password: "adminmiso"}))

	require.NoError(t, cv.Validate(&UpdateRoleRequest{Role: "admin"}))
	require.Error(t, cv.Validate(&UpdateRoleRequest{Role: "owner"}))

	require.NoError(t, cv.Validate(&CounterRequest{Action: "add"}))
	require.NoError(t, cv.Validate(&CounterRequest{Action: "sub"}))
	require.Error(t, cv.Validate(&CounterRequest{Action: "bogus"}))
	require.Error(t, cv.Validate(&CounterRequest{}))

	require.NoError(t, cv.Validate(&IdeaListQuery{}))
	require.NoError(t, cv.Validate(&IdeaListQuery{Sort: "views", Category: "IT"}))
	require.Error(t, cv.Validate(&IdeaListQuery{Sort: "random"}))
	require.Error(t, cv.Validate(&IdeaListQuery{Category: "  "}))

	require.NoError(t, cv.Validate(&IdeaRequest{Idea: IdeaInput{CategoryID: 1, Title: "t", Content: "c"}}))
	require.Error(t, cv.Validate(&IdeaRequest{Idea: IdeaInput{CategoryID: 0, Title: "t", Content: "c"}}))
	require.Error(t, cv.Validate(&IdeaRequest{Idea: IdeaInput{CategoryID: 1, Title: " ", Content: "c"}}))

	require.NoError(t, cv.Validate(&InquiryStatusRequest{Status: "completed"}))
	require.Error(t, cv.Validate(&InquiryStatusRequest{Status: "pending"}))

	require.Error(t, cv.Validate(&CommentRequest{IdeaID: 1}))
	require.Error(t, cv.Validate(&ScrapRequest{}))
}

func TestPasswordByteLimit(t *testing.T) {
	cv := NewValidator()

	require.NoError(t, cv.Validate(&CreateUserRequest{Nickname: "n", LoginID: "miso", Password: strings.Repeat("a", MaxPasswordBytes)}))
	require.Error(t, cv.Validate(&CreateUserRequest{Nickname: "n", LoginID: "miso", Password: strings.Repeat("a", MaxPasswordBytes+1)}))
	// 25 個韓文字為 75 bytes
	err := cv.Validate(&LoginRequest{LoginID: "miso", Password: strings.Repeat("가", 25)})
	require.Error(t, err)
	require.Equal(t, fieldMessages["Password"], ValidationMessage(err))
}

func TestValidationMessage(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&CounterRequest{Action: "bogus"})
	require.Equal(t, fieldMessages["Action"], ValidationMessage(err))

	err = cv.Validate(&LoginRequest{LoginID: "miso", Password: "x"})
	require.Equal(t, fieldMessages["Password"], ValidationMessage(err))

	require.Equal(t, DefaultValidationMessage, ValidationMessage(errors.New("other")))
}
