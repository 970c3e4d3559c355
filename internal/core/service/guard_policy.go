package service

import "github.com/rushhour/scheduling/internal/core/domain"

// Operation names a guarded use case.
type Operation string

const (
	OpProviderCreate Operation = "provider.create"
	OpProviderUpdate Operation = "provider.update"
	OpProviderDelete Operation = "provider.delete"
	OpProviderRead   Operation = "provider.read"
	OpProviderList   Operation = "provider.list"

	OpEmployeeCreate Operation = "employee.create"
	OpEmployeeUpdate Operation = "employee.update"
	OpEmployeeDelete Operation = "employee.delete"
	OpEmployeeRead   Operation = "employee.read"
	OpEmployeeList   Operation = "employee.list"

	OpClientCreate Operation = "client.create"
	OpClientUpdate Operation = "client.update"
	OpClientDelete Operation = "client.delete"
	OpClientRead   Operation = "client.read"
	OpClientList   Operation = "client.list"

	OpActivityCreate Operation = "activity.create"
	OpActivityUpdate Operation = "activity.update"
	OpActivityDelete Operation = "activity.delete"
	OpActivityRead   Operation = "activity.read"
	OpActivityList   Operation = "activity.list"

	OpAppointmentCreate Operation = "appointment.create"
	OpAppointmentUpdate Operation = "appointment.update"
	OpAppointmentDelete Operation = "appointment.delete"
	OpAppointmentRead   Operation = "appointment.read"
	OpAppointmentList   Operation = "appointment.list"

	OpAuditList Operation = "audit.list"
)

// Relation is a link between the caller's account and a target entity.
type Relation int

const (
	// MemberOfProvider: the caller has an employee row in Targets.ProviderID.
	MemberOfProvider Relation = iota + 1
	// SameProviderAsEmployee: the caller and Targets.EmployeeID share a provider.
	SameProviderAsEmployee
	// ProviderOfActivity: the caller belongs to the provider of Targets.ActivityID.
	ProviderOfActivity
	// ProviderOfAppointment: the caller shares a provider with the appointment's employee.
	ProviderOfAppointment
	// OwnEmployee: Targets.EmployeeID's account is the caller.
	OwnEmployee
	// OwnClient: Targets.ClientID's account is the caller.
	OwnClient
	EmployeeOfAppointment
	ClientOfAppointment
)

const (
	msgRoleNotAllowed       = "You are not allowed to perform this action!"
	msgForeignProvider      = "You can not perform this action on a provider you don't administrate!"
	msgForeignEmployee      = "You can perform this action with an employee that has the same provider as you!"
	msgOwnEmployeeOnly      = "You can perform this action only on your account!"
	msgOwnClientOnly        = "You can perform this action only on your information!"
	msgUnrelatedAppointment = "You can perform this action only on an appointment that you are related to!"
	msgForeignAppointment   = "You can perform this action only on an appointment that has the same provider as you!"
	msgOwnRoleChange        = "You can not change your own role!"
)

func (r Relation) message() string {
	switch r {
	case MemberOfProvider, ProviderOfActivity:
		return msgForeignProvider
	case SameProviderAsEmployee:
		return msgForeignEmployee
	case OwnEmployee:
		return msgOwnEmployeeOnly
	case OwnClient:
		return msgOwnClientOnly
	case ProviderOfAppointment:
		return msgForeignAppointment
	case EmployeeOfAppointment, ClientOfAppointment:
		return msgUnrelatedAppointment
	}
	return msgRoleNotAllowed
}

// requirement is enforced only when the caller holds role.
type requirement struct {
	role     domain.Role
	relation Relation
}

type policy struct {
	allowed []domain.Role
	require []requirement
}

var (
	adminOnly       = []domain.Role{domain.RoleAdmin}
	adminAndPA      = []domain.Role{domain.RoleAdmin, domain.RoleProviderAdmin}
	adminAndClient  = []domain.Role{domain.RoleAdmin, domain.RoleClient}
	adminPAEmployee = []domain.Role{domain.RoleAdmin, domain.RoleProviderAdmin, domain.RoleEmployee}
	everyone        = domain.Roles

	appointmentParties = []requirement{
		{domain.RoleEmployee, EmployeeOfAppointment},
		{domain.RoleClient, ClientOfAppointment},
		{domain.RoleProviderAdmin, ProviderOfAppointment},
	}
)

// policies is the permission table. ADMIN always passes.
var policies = map[Operation]policy{
	OpProviderCreate: {allowed: adminOnly},
	OpProviderDelete: {allowed: adminOnly},
	OpProviderList:   {allowed: adminAndClient},
	OpProviderRead: {allowed: adminAndPA, require: []requirement{
		{domain.RoleProviderAdmin, MemberOfProvider},
	}},
	OpProviderUpdate: {allowed: adminAndPA, require: []requirement{
		{domain.RoleProviderAdmin, MemberOfProvider},
	}},

	OpEmployeeCreate: {allowed: adminAndPA, require: []requirement{
		{domain.RoleProviderAdmin, MemberOfProvider},
	}},
	OpEmployeeUpdate: {allowed: adminPAEmployee, require: []requirement{
		{domain.RoleProviderAdmin, SameProviderAsEmployee},
		{domain.RoleProviderAdmin, MemberOfProvider},
		{domain.RoleEmployee, OwnEmployee},
		{domain.RoleEmployee, MemberOfProvider},
	}},
	OpEmployeeRead: {allowed: adminPAEmployee, require: []requirement{
		{domain.RoleProviderAdmin, SameProviderAsEmployee},
		{domain.RoleEmployee, OwnEmployee},
	}},
	OpEmployeeDelete: {allowed: adminAndPA, require: []requirement{
		{domain.RoleProviderAdmin, SameProviderAsEmployee},
	}},
	OpEmployeeList: {allowed: adminOnly},

	OpClientCreate: {allowed: adminOnly},
	OpClientList:   {allowed: adminOnly},
	OpClientRead:   {allowed: adminAndClient, require: []requirement{{domain.RoleClient, OwnClient}}},
	OpClientUpdate: {allowed: adminAndClient, require: []requirement{{domain.RoleClient, OwnClient}}},
	OpClientDelete: {allowed: adminAndClient, require: []requirement{{domain.RoleClient, OwnClient}}},

	OpActivityCreate: {allowed: adminAndPA},
	OpActivityList:   {allowed: adminAndClient},
	OpActivityRead:   {allowed: adminAndPA, require: []requirement{{domain.RoleProviderAdmin, ProviderOfActivity}}},
	OpActivityUpdate: {allowed: adminAndPA, require: []requirement{{domain.RoleProviderAdmin, ProviderOfActivity}}},
	OpActivityDelete: {allowed: adminAndPA, require: []requirement{{domain.RoleProviderAdmin, ProviderOfActivity}}},

	OpAppointmentCreate: {allowed: everyone, require: []requirement{
		{domain.RoleEmployee, OwnEmployee},
		{domain.RoleClient, OwnClient},
		{domain.RoleProviderAdmin, SameProviderAsEmployee},
	}},
	// Update checks the stored appointment first, then the parties it is moved to.
	OpAppointmentUpdate: {allowed: everyone, require: append(append([]requirement{}, appointmentParties...),
		requirement{domain.RoleEmployee, OwnEmployee},
		requirement{domain.RoleClient, OwnClient},
		requirement{domain.RoleProviderAdmin, SameProviderAsEmployee},
	)},
	OpAppointmentRead:   {allowed: everyone, require: appointmentParties},
	OpAppointmentDelete: {allowed: everyone, require: appointmentParties},
	OpAppointmentList:   {allowed: adminOnly},

	OpAuditList: {allowed: adminOnly},
}

// AllowedRoles returns the roles that may invoke op at all.
func AllowedRoles(op Operation) []domain.Role {
	return append([]domain.Role(nil), policies[op].allowed...)
}
