package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"mergington/internal/activities/metrics"
	"mergington/internal/activities/models"
	"mergington/internal/activities/store"
	dErrors "mergington/pkg/domain-errors"
)

// ServiceSuite runs the signup flow against the real in-memory registry.
type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.InMemory
	metrics *metrics.Metrics
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	s.Require().NoError(store.SeedDefaultActivities(s.ctx, s.store))
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store, WithMetrics(s.metrics))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) addActivity(name string, max int, participants ...string) {
	a, err := models.NewActivity(name, "Test activity", "Test time", max, participants)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, a))
}

func (s *ServiceSuite) roster(name string) []string {
	a, err := s.service.Get(s.ctx, name)
	s.Require().NoError(err)
	return a.Participants
}

func (s *ServiceSuite) TestList() {
	s.Run("every roster fits its capacity", func() {
		catalog, err := s.service.List(s.ctx)
		s.Require().NoError(err)
		s.NotEmpty(catalog)
		for name, a := range catalog {
			s.NotNil(a.Participants, name)
			s.LessOrEqual(len(a.Participants), a.MaxParticipants, name)
		}
	})

	s.Run("listing twice without signups is identical", func() {
		first, err := s.service.List(s.ctx)
		s.Require().NoError(err)
		second, err := s.service.List(s.ctx)
		s.Require().NoError(err)
		s.Equal(first, second)
	})

	s.Run("reports registry size", func() {
		_, err := s.service.List(s.ctx)
		s.Require().NoError(err)
		s.Equal(float64(9), promtestutil.ToFloat64(s.metrics.Activities))
	})
}

func (s *ServiceSuite) TestGet() {
	s.Run("returns roster", func() {
		s.Equal([]string{"michael@mergington.edu", "daniel@mergington.edu"}, s.roster("Chess Club"))
	})

	s.Run("unknown activity is not found", func() {
		_, err := s.service.Get(s.ctx, "Fake Activity")
		s.Require().ErrorIs(err, models.ErrActivityNotFound)
	})
}

func (s *ServiceSuite) TestSignup() {
	s.Run("round trip stores normalized email once", func() {
		result, err := s.service.Signup(s.ctx, "Chess Club", "  NewStudent@Mergington.edu ")
		s.Require().NoError(err)
		s.Equal("newstudent@mergington.edu", result.Email)
		s.Equal("Signed up newstudent@mergington.edu for Chess Club", result.Message())

		count := 0
		for _, p := range s.roster("Chess Club") {
			if p == "newstudent@mergington.edu" {
				count++
			}
		}
		s.Equal(1, count)
	})

	s.Run("duplicate leaves roster unchanged", func() {
		before := len(s.roster("Chess Club"))
		_, err := s.service.Signup(s.ctx, "Chess Club", "michael@mergington.edu")
		s.Require().ErrorIs(err, models.ErrAlreadyRegistered)
		s.Len(s.roster("Chess Club"), before)
	})

	s.Run("duplicate check ignores case", func() {
		_, err := s.service.Signup(s.ctx, "Programming Class", "Foo@Bar.com")
		s.Require().NoError(err)
		_, err = s.service.Signup(s.ctx, "Programming Class", "foo@bar.com")
		s.Require().ErrorIs(err, models.ErrAlreadyRegistered)
	})

	s.Run("same email may join different activities", func() {
		_, err := s.service.Signup(s.ctx, "Drama Club", "multisport@mergington.edu")
		s.Require().NoError(err)
		_, err = s.service.Signup(s.ctx, "Debate Team", "multisport@mergington.edu")
		s.Require().NoError(err)

		s.Contains(s.roster("Drama Club"), "multisport@mergington.edu")
		s.Contains(s.roster("Debate Team"), "multisport@mergington.edu")
		s.Len(s.roster("Drama Club"), 3)
		s.Len(s.roster("Debate Team"), 3)
	})

	s.Run("unknown activity is not found", func() {
		_, err := s.service.Signup(s.ctx, "Fake Activity", "student@mergington.edu")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("activity names are matched exactly", func() {
		_, err := s.service.Signup(s.ctx, "chess club", "student@mergington.edu")
		s.Require().ErrorIs(err, models.ErrActivityNotFound)
	})
}

func (s *ServiceSuite) TestSignupValidationOrder() {
	s.Run("invalid email wins over unknown activity", func() {
		_, err := s.service.Signup(s.ctx, "Fake Activity", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("duplicate wins over full", func() {
		s.addActivity("Full With Member", 1, "existing@mergington.edu")
		_, err := s.service.Signup(s.ctx, "Full With Member", "EXISTING@mergington.edu")
		s.Require().ErrorIs(err, models.ErrAlreadyRegistered)
	})
}

func (s *ServiceSuite) TestSignupCapacity() {
	s.Run("full activity rejects newcomer", func() {
		s.addActivity("TestCapacityActivity", 1, "existing@mergington.edu")
		_, err := s.service.Signup(s.ctx, "TestCapacityActivity", "new@mergington.edu")
		s.Require().ErrorIs(err, models.ErrFull)
		s.Len(s.roster("TestCapacityActivity"), 1)
	})

	s.Run("single slot accepts exactly one signup", func() {
		s.addActivity("Single Slot", 1)
		_, err := s.service.Signup(s.ctx, "Single Slot", "first@mergington.edu")
		s.Require().NoError(err)
		_, err = s.service.Signup(s.ctx, "Single Slot", "second@mergington.edu")
		s.Require().ErrorIs(err, models.ErrFull)
		s.Equal([]string{"first@mergington.edu"}, s.roster("Single Slot"))
	})
}

func (s *ServiceSuite) TestSignupMetrics() {
	_, _ = s.service.Signup(s.ctx, "Math Club", "counted@mergington.edu")
	_, _ = s.service.Signup(s.ctx, "Math Club", "counted@mergington.edu")
	_, _ = s.service.Signup(s.ctx, "Math Club", "")
	_, _ = s.service.Signup(s.ctx, "Nope", "counted@mergington.edu")

	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Signups.WithLabelValues(metrics.OutcomeSuccess)))
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Signups.WithLabelValues(metrics.OutcomeAlreadyRegistered)))
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Signups.WithLabelValues(metrics.OutcomeInvalidEmail)))
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Signups.WithLabelValues(metrics.OutcomeNotFound)))
}

type failingStore struct {
	*store.InMemory
}

func (f *failingStore) Execute(context.Context, string, func(*models.Activity) error, func(*models.Activity)) (*models.Activity, error) {
	return nil, errors.New("registry unavailable")
}

func (s *ServiceSuite) TestSignupInfrastructureFailure() {
	svc := New(&failingStore{InMemory: store.NewInMemory()})
	_, err := svc.Signup(s.ctx, "Chess Club", "student@mergington.edu")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
