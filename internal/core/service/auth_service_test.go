package service

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

func newAuthSvc(f *fixture, audit ports.AuditLog) *AuthService {
	return NewAuthService(f.store.Accounts(), f.creds, audit, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newFixture(t)
	svc := newAuthSvc(f, ports.NopAuditLog{})
	cl, _ := f.client()

	token, err := svc.Login(f.ctx, ports.LoginInput{Email: cl.Account.Email, Password: testPassword})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	caller, err := f.creds.ParseToken(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if caller.AccountID != cl.AccountID || caller.Role != domain.RoleClient {
		t.Fatalf("unexpected caller %+v", caller)
	}
}

func TestAuthService_Login_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := newAuthSvc(f, ports.NopAuditLog{})
	cl, _ := f.client()

	tests := []struct {
		name string
		in   ports.LoginInput
		msg  string
	}{
		{"wrong password", ports.LoginInput{Email: cl.Account.Email, Password: "Wrong.123"}, domain.MsgInvalidCredentials},
		{"unknown email", ports.LoginInput{Email: "ghost@mail.com", Password: testPassword}, domain.MsgInvalidCredentials},
		{"missing password", ports.LoginInput{Email: cl.Account.Email}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(f.ctx, tt.in)
			assertKind(t, err, domain.ErrValidation, tt.msg)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	audit := &recordingAudit{}
	svc := newAuthSvc(f, audit)
	cl, caller := f.client()

	err := svc.ChangePassword(f.ctx, caller, ports.ChangePasswordInput{OldPassword: "Nope.1234", NewPassword: "Fresh.4567"})
	assertKind(t, err, domain.ErrValidation, domain.MsgInvalidOldPassword)

	err = svc.ChangePassword(f.ctx, caller, ports.ChangePasswordInput{OldPassword: testPassword, NewPassword: "weak"})
	assertKind(t, err, domain.ErrValidation, "")

	if err := svc.ChangePassword(f.ctx, caller, ports.ChangePasswordInput{OldPassword: testPassword, NewPassword: "Fresh.4567"}); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := svc.Login(f.ctx, ports.LoginInput{Email: cl.Account.Email, Password: testPassword}); err == nil {
		t.Fatalf("old password still works")
	}
	if _, err := svc.Login(f.ctx, ports.LoginInput{Email: cl.Account.Email, Password: "Fresh.4567"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditPasswordChange {
		t.Fatalf("expected one password_change event, got %+v", audit.events)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	f := newFixture(t)
	svc := newAuthSvc(f, ports.NopAuditLog{})

	_, err := svc.EnsureAdmin(f.ctx, "root@rushhour.com", "short")
	assertKind(t, err, domain.ErrValidation, "")

	first, err := svc.EnsureAdmin(f.ctx, "root@rushhour.com", "Root.Pass1")
	if err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if first.Role != domain.RoleAdmin || first.Username != "root" {
		t.Fatalf("unexpected admin %+v", first)
	}

	again, err := svc.EnsureAdmin(f.ctx, "root@rushhour.com", "Other.Pass2")
	if err != nil {
		t.Fatalf("second EnsureAdmin returned error: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("expected the existing admin to be returned, got %d and %d", first.ID, again.ID)
	}
	if _, err := svc.Login(f.ctx, ports.LoginInput{Email: "root@rushhour.com", Password: "Root.Pass1"}); err != nil {
		t.Fatalf("admin cannot log in: %v", err)
	}
}
