package domain

import (
	"fmt"
	"greeter-proxy/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	req := require.New(t)

	role, err := ParseRole(" Evaluator ")
	req.NoError(err)
	req.Equal(RoleEvaluator, role)

	role, err = ParseRole("GREETER")
	req.NoError(err)
	req.Equal(RoleGreeter, role)

	_, err = ParseRole("admin")
	req.ErrorIs(err, errors.ErrInvalidRole)
}

func TestFormatBody(t *testing.T) {
	req := require.New(t)
	req.Equal("[Alice] Ready?", FormatBody("Alice", "Ready?"))
	req.Equal("[Bob] ", FormatBody("Bob", ""))
}

func TestDeliveryReport_Err(t *testing.T) {
	req := require.New(t)
	carrier := fmt.Errorf("carrier rejected")

	ok := DeliveryReport{Results: []DeliveryResult{{To: "+15552222222"}, {To: "+15553333333"}}}
	req.NoError(ok.Err())
	req.Equal(2, ok.Delivered())

	partial := DeliveryReport{Results: []DeliveryResult{{To: "+15552222222", Err: carrier}, {To: "+15553333333"}}}
	err := partial.Err()
	req.ErrorIs(err, errors.ErrDeliveryFailed)
	req.ErrorIs(err, carrier)
	req.Contains(err.Error(), "1 of 2 recipients")
	req.Contains(err.Error(), "+15552222222")
	req.Equal(1, partial.Delivered())
}

func TestRoutingPlan_Constructors(t *testing.T) {
	req := require.New(t)

	drop := Drop(errors.ErrNoActiveEvaluator)
	req.True(drop.IsDrop())
	req.Empty(drop.Recipients)
	req.Equal("drop", drop.Kind.String())

	directed := Directed("+15551111111", "[Bob] Yes")
	req.False(directed.IsDrop())
	req.Equal([]string{"+15551111111"}, directed.Recipients)
	req.Equal("directed", directed.Kind.String())

	req.Equal("broadcast", Broadcast(nil, "x").Kind.String())
}
