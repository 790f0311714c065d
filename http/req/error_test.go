package req_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/req"
	"github.com/xy-planning-network/trailhead/http/resp"
)

var fieldErrs = req.FieldErrors{
	{Field: "name", Value: "", Rule: "required"},
	{Field: "miles", Value: int64(0), Rule: "gt=0"},
	{Field: "miles", Value: "far", Rule: "type=int64"},
}

func TestFieldErrors(t *testing.T) {
	require.Equal(t, "name: required; miles: gt=0; miles: type=int64", fieldErrs.Error())
	require.Equal(t, "", req.FieldErrors{}.Error())
	require.ErrorIs(t, req.FieldErrors{}, trailhead.ErrNotValid)
	require.Equal(t, map[string][]string{"name": {"required"}, "miles": {"gt=0", "type=int64"}}, fieldErrs.Fields())
}

func TestFieldErrorsMarshalJSON(t *testing.T) {
	tcs := []struct {
		name     string
		fe       req.FieldErrors
		expected string
	}{
		{"Nil", nil, `{"errors":[]}`},
		{"Some", fieldErrs[:1], `{"errors":[{"field":"name","value":"","rule":"required"}]}`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := json.Marshal(tc.fe)

			// Assert
			require.Nil(t, err)
			require.JSONEq(t, tc.expected, string(actual))
		})
	}
}

func TestReply(t *testing.T) {
	t.Run("Field-Errors", func(t *testing.T) {
		// Arrange
		err := resp.NewStatusError(resp.StatusUnprocessableEntity, fieldErrs[:1])
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "https://example.com", nil)
		r.Header.Set("Accept", "application/json")

		// Act
		res, actual := req.Reply(err)
		require.Nil(t, actual)
		require.Nil(t, res.Write(context.Background(), exchange.New(w, r)))

		// Assert
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.JSONEq(t, `{"errors":[{"field":"name","value":"","rule":"required"}]}`, w.Body.String())
	})

	t.Run("Other", func(t *testing.T) {
		// Arrange
		err := resp.NewStatusError(resp.StatusBadRequest, errors.New("boom"))

		// Act
		res, actual := req.Reply(err)

		// Assert
		require.Nil(t, res)
		require.Equal(t, err, actual)
	})
}
