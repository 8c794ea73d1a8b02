package services

import (
	"log/slog"
	"slices"

	"github.com/14kear/online_elections/internal/entity"
)

type Operation string

const (
	OpCreateElection    Operation = "election.create"
	OpUpdateElection    Operation = "election.update"
	OpStartElection     Operation = "election.start"
	OpCloseElection     Operation = "election.close"
	OpDeleteElection    Operation = "election.delete"
	OpPublishResults    Operation = "results.publish"
	OpViewLiveResults   Operation = "results.live"
	OpViewStats         Operation = "election.stats"
	OpListElectionVotes Operation = "election.votes"
)

var (
	lifecycleRoles = []entity.Role{entity.RolePresident, entity.RoleSecretary}
	topRoles       = []entity.Role{entity.RolePresident}
	adminRoles     = []entity.Role{entity.RolePresident, entity.RoleSecretary, entity.RoleTreasurer}
)

// policy maps each guarded operation to the roles allowed to perform it.
var policy = map[Operation][]entity.Role{
	OpCreateElection:    lifecycleRoles,
	OpUpdateElection:    lifecycleRoles,
	OpStartElection:     lifecycleRoles,
	OpCloseElection:     lifecycleRoles,
	OpDeleteElection:    topRoles,
	OpPublishResults:    topRoles,
	OpViewLiveResults:   adminRoles,
	OpViewStats:         adminRoles,
	OpListElectionVotes: adminRoles,
}

// Allowed reports whether the principal may perform op.
func Allowed(p entity.Principal, op Operation) bool {
	return p.IsActive && slices.Contains(policy[op], p.Role)
}

// authorize returns an AuthorizationError when p may not perform op. The
// required roles are logged and never returned to the caller.
func authorize(log *slog.Logger, p entity.Principal, op Operation) error {
	if !p.IsActive {
		return AuthorizationError(msgInactiveAccount)
	}
	if Allowed(p, op) {
		return nil
	}

	log.Warn("operation denied",
		slog.String("operation", string(op)),
		slog.String("user_id", p.UserID),
		slog.String("role", string(p.Role)),
		slog.Any("required_roles", policy[op]),
	)
	return AuthorizationError(msgForbidden)
}
