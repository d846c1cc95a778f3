package main

import (
	"bytes"
	"fmt"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"greeter-proxy/internal"
	"greeter-proxy/mocks"
	"greeter-proxy/services"
	"testing"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	color.Enable = false
}

func noInspect(string) ([]internal.InspectRow, error) { return nil, nil }

func execute(t *testing.T, admin services.IAdminService, args ...string) (string, error) {
	closed := false
	root := newRootCmd(func() (services.IAdminService, func(), error) {
		return admin, func() { closed = true }, nil
	}, noInspect)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		require.True(t, closed, "admin service should be released")
	}
	return out.String(), err
}

func TestAdd_Prints_Canonical_Phone(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockIAdminService(ctrl)
	admin.EXPECT().AddUser("(201) 555-0123", "Greeter", "Bob").Return("+12015550123", nil).Times(1)

	out, err := execute(t, admin, "add", "-p", "(201) 555-0123", "-r", "Greeter", "-n", "Bob")

	req.NoError(err)
	req.Contains(out, "Successfully added greeter: Bob (+12015550123)")
}

func TestAdd_Requires_All_Flags(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockIAdminService(ctrl)
	admin.EXPECT().AddUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := execute(t, admin, "add", "-p", "+12015550123")

	req.Error(err)
}

func TestAdd_Invalid_Role_Is_Returned(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockIAdminService(ctrl)
	admin.EXPECT().AddUser(gomock.Any(), "boss", gomock.Any()).
		Return("", fmt.Errorf("%w: boss", errors.ErrInvalidRole)).Times(1)

	_, err := execute(t, admin, "add", "-p", "+12015550123", "-r", "boss", "-n", "Bob")

	req.ErrorIs(err, errors.ErrInvalidRole)
}

func TestList(t *testing.T) {
	t.Run("should say when nobody is registered", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		admin := mocks.NewMockIAdminService(ctrl)
		admin.EXPECT().ListUsers().Return(nil, nil).Times(1)

		out, err := execute(t, admin, "list")

		req.NoError(err)
		req.Equal("No users found\n", out)
	})

	t.Run("should print one row per user", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		admin := mocks.NewMockIAdminService(ctrl)
		alice := domain.User{ID: uuid.New(), PhoneNumber: "+15551111111", Role: domain.RoleEvaluator, Name: "Alice"}
		bob := domain.User{ID: uuid.New(), PhoneNumber: "+15552222222", Role: domain.RoleGreeter, Name: "Bob"}
		admin.EXPECT().ListUsers().Return([]domain.User{alice, bob}, nil).Times(1)

		out, err := execute(t, admin, "list")

		req.NoError(err)
		req.Contains(out, "PHONE")
		req.Contains(out, alice.ID.String())
		req.Contains(out, "+15552222222")
		req.Contains(out, "evaluator")
		req.Contains(out, "Bob")
	})
}

func TestRemove(t *testing.T) {
	t.Run("should confirm the removed user", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		admin := mocks.NewMockIAdminService(ctrl)
		bob := domain.User{ID: uuid.New(), PhoneNumber: "+15552222222", Role: domain.RoleGreeter, Name: "Bob"}
		admin.EXPECT().RemoveUser("Bob").Return(bob, nil, nil).Times(1)

		out, err := execute(t, admin, "remove", "Bob")

		req.NoError(err)
		req.Contains(out, "Removed greeter: Bob (+15552222222)")
	})

	t.Run("should report an unknown identifier", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		admin := mocks.NewMockIAdminService(ctrl)
		admin.EXPECT().RemoveUser("Zed").
			Return(domain.User{}, nil, fmt.Errorf("%w: %q", errors.ErrUserNotFound, "Zed")).Times(1)

		out, err := execute(t, admin, "remove", "Zed")

		req.NoError(err)
		req.Contains(out, `User not found: "Zed"`)
	})

	t.Run("should list candidates when the name is ambiguous", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		admin := mocks.NewMockIAdminService(ctrl)
		candidates := []domain.User{
			{ID: uuid.New(), PhoneNumber: "+15551111111", Role: domain.RoleGreeter, Name: "Sam"},
			{ID: uuid.New(), PhoneNumber: "+15553333333", Role: domain.RoleEvaluator, Name: "Sam"},
		}
		admin.EXPECT().RemoveUser("Sam").
			Return(domain.User{}, candidates, fmt.Errorf("%w: 2 users", errors.ErrAmbiguousIdentifier)).Times(1)

		out, err := execute(t, admin, "remove", "Sam")

		req.NoError(err)
		req.Contains(out, `Ambiguous request. Multiple users found with name "Sam":`)
		req.Contains(out, "+15551111111")
		req.Contains(out, "+15553333333")
		req.Contains(out, "Please run the command again using the specific Phone Number.")
	})

	t.Run("should require an identifier", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		admin := mocks.NewMockIAdminService(ctrl)

		_, err := execute(t, admin, "remove")

		req.Error(err)
	})
}

func TestStatus(t *testing.T) {
	t.Run("should report idle", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		admin := mocks.NewMockIAdminService(ctrl)
		admin.EXPECT().Status().Return(domain.ConversationStatus{}, nil).Times(1)

		out, err := execute(t, admin, "status")

		req.NoError(err)
		req.Contains(out, "System Status: Idle (No active conversation)")
	})

	t.Run("should report the active evaluator", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		admin := mocks.NewMockIAdminService(ctrl)
		admin.EXPECT().Status().
			Return(domain.ConversationStatus{Active: true, PhoneNumber: "+15551111111", DisplayName: "Alice"}, nil).Times(1)

		out, err := execute(t, admin, "status")

		req.NoError(err)
		req.Contains(out, "System Status: Active Conversation")
		req.Contains(out, "Routing Greeter replies to: Alice (+15551111111)")
	})
}

func TestReset(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockIAdminService(ctrl)
	admin.EXPECT().ResetConversation().Return(nil).Times(1)

	out, err := execute(t, admin, "reset")

	req.NoError(err)
	req.Contains(out, "Conversation state reset. System is now Idle.")
}

func TestOpener_Failure_Is_Returned(t *testing.T) {
	req := require.New(t)
	root := newRootCmd(func() (services.IAdminService, func(), error) {
		return nil, nil, fmt.Errorf("database locked")
	}, noInspect)
	root.SetArgs([]string{"status"})

	req.ErrorContains(root.Execute(), "database locked")
}

func TestInspect_Prints_Rows_For_Prefix(t *testing.T) {
	req := require.New(t)
	var gotPrefix string
	root := newRootCmd(nil, func(prefix string) ([]internal.InspectRow, error) {
		gotPrefix = prefix
		return []internal.InspectRow{{Key: "state:last_active_evaluator", Kind: "STATE", Detail: "+15551111111"}}, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"inspect", "--prefix", "state:"})

	req.NoError(root.Execute())
	req.Equal("state:", gotPrefix)
	req.Contains(out.String(), "state:last_active_evaluator")
	req.Contains(out.String(), "STATE")
}
