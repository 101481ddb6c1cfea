package service

import (
	"context"
	"sort"
	"time"

	membershipdomain "github.com/neighborhq/memberdesk/internal/membership/domain"
	persondomain "github.com/neighborhq/memberdesk/internal/person/domain"
	"github.com/neighborhq/memberdesk/internal/reconcile/domain"
	"github.com/neighborhq/memberdesk/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	MembershipRepo membershipdomain.Repository
	PersonRepo     persondomain.Repository
	Metrics        *telemetry.Metrics `optional:"true"`
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	membershipRepo membershipdomain.Repository
	personRepo     persondomain.Repository
	metrics        *telemetry.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("reconcile.service"),
		membershipRepo: p.MembershipRepo,
		personRepo:     p.PersonRepo,
		metrics:        p.Metrics,
	}
}

// ListDuplicates reports every normalized email that owns more than one
// membership row. Sequential renewals under the same email show up here
// too; the report does not try to guess intent.
func (s *Service) ListDuplicates(ctx context.Context) ([]domain.DuplicateMembership, error) {
	groups, err := s.groupByEmail(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.personNamesByEmail(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]domain.DuplicateMembership, 0)
	for email, group := range groups {
		if len(group) < 2 {
			continue
		}
		s.metrics.ObserveDuplicateGroup(len(group))

		sorted := sortByRenewalDesc(group)
		tiers := make([]domain.TierInfo, 0, len(sorted))
		for _, m := range sorted {
			tiers = append(tiers, domain.TierInfo{
				Tier:           m.Tier,
				LastRenewal:    m.LastRenewal,
				SubscriptionID: m.StripeSubscriptionID,
				CustomerID:     m.StripeCustomerID,
			})
		}

		report = append(report, domain.DuplicateMembership{
			Email:           email,
			PersonName:      names[email],
			MembershipCount: len(group),
			Tiers:           tiers,
		})
	}

	sort.Slice(report, func(i, j int) bool {
		return report[i].Email < report[j].Email
	})
	return report, nil
}

// LinkBestMemberships points each person at the best membership sharing
// their email. A link is never downgraded: an active membership is only
// replaced by an active one with a strictly later renewal.
func (s *Service) LinkBestMemberships(ctx context.Context) (*domain.LinkReport, error) {
	groups, err := s.groupByEmail(ctx)
	if err != nil {
		return nil, err
	}

	people, err := s.personRepo.ListWithEmail(ctx, s.db)
	if err != nil {
		return nil, err
	}

	report := &domain.LinkReport{}
	for i := range people {
		person := &people[i]
		group := groups[person.NormalizedEmail()]
		if len(group) == 0 {
			continue
		}

		best := selectBest(group)
		if best == nil {
			continue
		}

		outcome, err := s.linkPerson(ctx, person, best)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case outcomeLinked:
			report.Linked++
		case outcomeUpdated:
			report.Updated++
		default:
			report.Skipped++
		}
	}

	s.metrics.RecordLinkOutcome("linked", report.Linked)
	s.metrics.RecordLinkOutcome("updated", report.Updated)
	s.metrics.RecordLinkOutcome("skipped", report.Skipped)

	s.log.Info("link pass complete",
		zap.Int("linked", report.Linked),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

type linkOutcome int

const (
	outcomeSkipped linkOutcome = iota
	outcomeLinked
	outcomeUpdated
)

func (s *Service) linkPerson(
	ctx context.Context,
	person *persondomain.Person,
	best *membershipdomain.Membership,
) (linkOutcome, error) {
	if person.MembershipID == nil {
		if err := s.personRepo.UpdateMembershipID(ctx, s.db, person.ID, best.ID); err != nil {
			return outcomeSkipped, err
		}
		return outcomeLinked, nil
	}

	if *person.MembershipID == best.ID {
		return outcomeSkipped, nil
	}

	current, err := s.membershipRepo.FindByID(ctx, s.db, *person.MembershipID)
	if err != nil {
		return outcomeSkipped, err
	}
	if current == nil {
		// Dangling link, repair it.
		if err := s.personRepo.UpdateMembershipID(ctx, s.db, person.ID, best.ID); err != nil {
			return outcomeSkipped, err
		}
		return outcomeUpdated, nil
	}

	if !shouldReplace(current, best) {
		return outcomeSkipped, nil
	}

	if err := s.personRepo.UpdateMembershipID(ctx, s.db, person.ID, best.ID); err != nil {
		return outcomeSkipped, err
	}
	return outcomeUpdated, nil
}

// shouldReplace applies the never-downgrade rule.
func shouldReplace(current, best *membershipdomain.Membership) bool {
	if !current.IsActive() && best.IsActive() {
		return true
	}
	if current.IsActive() && best.IsActive() {
		return renewalAfter(best.LastRenewal, current.LastRenewal)
	}
	return false
}

// renewalAfter reports whether a is strictly later than b. A set
// renewal beats an unset one; two unset renewals are equal.
func renewalAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

// selectBest picks the winning membership inside one email group:
// active ones sorted by renewal desc win; with no active membership the
// most recently created row wins.
func selectBest(group []*membershipdomain.Membership) *membershipdomain.Membership {
	active := make([]*membershipdomain.Membership, 0, len(group))
	for _, m := range group {
		if m.IsActive() {
			active = append(active, m)
		}
	}
	if len(active) > 0 {
		return sortByRenewalDesc(active)[0]
	}

	all := make([]*membershipdomain.Membership, len(group))
	copy(all, group)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all[0]
}

// sortByRenewalDesc orders by last renewal desc with unset renewals
// last; the sort is stable so equal rows keep their input order.
func sortByRenewalDesc(group []*membershipdomain.Membership) []*membershipdomain.Membership {
	out := make([]*membershipdomain.Membership, len(group))
	copy(out, group)
	sort.SliceStable(out, func(i, j int) bool {
		return renewalAfter(out[i].LastRenewal, out[j].LastRenewal)
	})
	return out
}

func (s *Service) groupByEmail(ctx context.Context) (map[string][]*membershipdomain.Membership, error) {
	memberships, err := s.membershipRepo.ListWithEmail(ctx, s.db)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*membershipdomain.Membership)
	for _, m := range memberships {
		email := m.NormalizedEmail()
		if email == "" {
			continue
		}
		groups[email] = append(groups[email], m)
	}
	return groups, nil
}

func (s *Service) personNamesByEmail(ctx context.Context) (map[string]string, error) {
	people, err := s.personRepo.ListWithEmail(ctx, s.db)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(people))
	for i := range people {
		email := people[i].NormalizedEmail()
		if email == "" {
			continue
		}
		if _, ok := names[email]; !ok {
			names[email] = people[i].FullName
		}
	}
	return names, nil
}
