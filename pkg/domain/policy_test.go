package domain_test

import (
	"errors"
	"testing"

	"github.com/trialkeep/trialkeep/pkg/domain"
	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
)

func TestCheckExistence(t *testing.T) {
	for name, testcase := range map[string]struct {
		got    domain.ExistenceResult
		policy domain.DeletionPolicy
		want   error
	}{
		"missing entity under Any is missing": {
			got: domain.DoesNotExist, policy: domain.PolicyAny,
			want: domerr.ErrDoesNotExist,
		},
		"missing entity under NotDeleted is missing": {
			got: domain.DoesNotExist, policy: domain.PolicyNotDeleted,
			want: domerr.ErrDoesNotExist,
		},
		"missing entity under Deleted is missing": {
			got: domain.DoesNotExist, policy: domain.PolicyDeleted,
			want: domerr.ErrDoesNotExist,
		},
		"live entity under Any passes": {
			got: domain.Exists, policy: domain.PolicyAny,
			want: nil,
		},
		"live entity under NotDeleted passes": {
			got: domain.Exists, policy: domain.PolicyNotDeleted,
			want: nil,
		},
		"live entity under Deleted is unexpectedly alive": {
			got: domain.Exists, policy: domain.PolicyDeleted,
			want: domerr.ErrAlreadyExists,
		},
		"deleted entity under Any passes": {
			got: domain.Deleted, policy: domain.PolicyAny,
			want: nil,
		},
		"deleted entity under NotDeleted is deleted": {
			got: domain.Deleted, policy: domain.PolicyNotDeleted,
			want: domerr.ErrDeleted,
		},
		"deleted entity under Deleted passes": {
			got: domain.Deleted, policy: domain.PolicyDeleted,
			want: nil,
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual := domain.CheckExistence(testcase.got, testcase.policy)
			if testcase.want == nil {
				if actual != nil {
					t.Errorf("unexpected error: %v", actual)
				}
				return
			}
			if !errors.Is(actual, testcase.want) {
				t.Errorf("wrong error: got %v, want %v", actual, testcase.want)
			}
		})
	}
}

func TestCheckNonExistence(t *testing.T) {
	for name, testcase := range map[string]struct {
		got    domain.ExistenceResult
		policy domain.DeletionPolicy
		want   error
	}{
		"missing entity under Any passes": {
			got: domain.DoesNotExist, policy: domain.PolicyAny,
			want: nil,
		},
		"live entity under Any already exists": {
			got: domain.Exists, policy: domain.PolicyAny,
			want: domerr.ErrAlreadyExists,
		},
		"deleted entity under Any is deleted": {
			got: domain.Deleted, policy: domain.PolicyAny,
			want: domerr.ErrDeleted,
		},
		"deleted entity under NotDeleted passes": {
			got: domain.Deleted, policy: domain.PolicyNotDeleted,
			want: nil,
		},
		"live entity under NotDeleted already exists": {
			got: domain.Exists, policy: domain.PolicyNotDeleted,
			want: domerr.ErrAlreadyExists,
		},
		"live entity under Deleted passes": {
			got: domain.Exists, policy: domain.PolicyDeleted,
			want: nil,
		},
		"deleted entity under Deleted is deleted": {
			got: domain.Deleted, policy: domain.PolicyDeleted,
			want: domerr.ErrDeleted,
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual := domain.CheckNonExistence(testcase.got, testcase.policy)
			if testcase.want == nil {
				if actual != nil {
					t.Errorf("unexpected error: %v", actual)
				}
				return
			}
			if !errors.Is(actual, testcase.want) {
				t.Errorf("wrong error: got %v, want %v", actual, testcase.want)
			}
		})
	}
}

func TestCheckAllExist(t *testing.T) {
	for name, testcase := range map[string]struct {
		got    []domain.ExistenceResult
		policy domain.DeletionPolicy
		want   error
	}{
		"empty set passes": {
			got: []domain.ExistenceResult{}, policy: domain.PolicyNotDeleted,
			want: nil,
		},
		"all live under NotDeleted passes": {
			got:    []domain.ExistenceResult{domain.Exists, domain.Exists},
			policy: domain.PolicyNotDeleted,
			want:   nil,
		},
		"one missing is fatal under Any": {
			got:    []domain.ExistenceResult{domain.Exists, domain.DoesNotExist, domain.Deleted},
			policy: domain.PolicyAny,
			want:   domerr.ErrDoesNotExist,
		},
		"one deleted is fatal under NotDeleted": {
			got:    []domain.ExistenceResult{domain.Exists, domain.Deleted},
			policy: domain.PolicyNotDeleted,
			want:   domerr.ErrDeleted,
		},
		"one live is fatal under Deleted": {
			got:    []domain.ExistenceResult{domain.Deleted, domain.Exists},
			policy: domain.PolicyDeleted,
			want:   domerr.ErrAlreadyExists,
		},
		"mixed states pass under Any": {
			got:    []domain.ExistenceResult{domain.Exists, domain.Deleted},
			policy: domain.PolicyAny,
			want:   nil,
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual := domain.CheckAllExist(testcase.got, testcase.policy)
			if testcase.want == nil {
				if actual != nil {
					t.Errorf("unexpected error: %v", actual)
				}
				return
			}
			if !errors.Is(actual, testcase.want) {
				t.Errorf("wrong error: got %v, want %v", actual, testcase.want)
			}
		})
	}
}
