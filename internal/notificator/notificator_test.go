package notificator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/logger"
)

type fakeRepo struct {
	links map[string]*models.DeliveryLink
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{links: map[string]*models.DeliveryLink{}}
}

func (f *fakeRepo) CreateSession(session *models.Session) error { return nil }
func (f *fakeRepo) GetSession(id string) (*models.Session, error) {
	return nil, models.ErrSessionNotFound
}
func (f *fakeRepo) SaveSession(session *models.Session) error { return nil }
func (f *fakeRepo) DeleteSession(id string) error             { return nil }

func (f *fakeRepo) UpsertDeliveryLink(link *models.DeliveryLink) error {
	f.links[link.Address] = link
	return nil
}

func (f *fakeRepo) GetDeliveryLink(address string) (*models.DeliveryLink, error) {
	link, ok := f.links[address]
	if !ok {
		return nil, fmt.Errorf("delivery link not found")
	}
	return link, nil
}

func (f *fakeRepo) GetDeliveryLinkByTelegramUsername(username string) (*models.DeliveryLink, error) {
	for _, link := range f.links {
		if link.TelegramUsername == username {
			return link, nil
		}
	}
	return nil, fmt.Errorf("delivery link not found")
}

func (f *fakeRepo) SetTelegramChatID(username, chatID string) error { return nil }

func TestDeliverMotivation_NoLinkIsNoop(t *testing.T) {
	n := NewNotificator(logger.NewNop(), newFakeRepo(), nil, nil)

	// A wallet without a delivery link is not an error.
	assert.NotPanics(t, func() {
		n.DeliverMotivation("0xunknown", "Keep going!")
	})
}

func TestDeliverMotivation_NilChannelsAreSkipped(t *testing.T) {
	repo := newFakeRepo()
	repo.links["0xab"] = &models.DeliveryLink{
		Address:        "0xab",
		TelegramChatID: "12345",
		Email:          "jane@x.com",
	}
	n := NewNotificator(logger.NewNop(), repo, nil, nil)

	// Linked channels without a configured notificator must not panic.
	assert.NotPanics(t, func() {
		n.DeliverMotivation("0xab", "Keep going!")
	})
}

func TestSafeCall_RecoversPanic(t *testing.T) {
	n := NewNotificator(logger.NewNop(), newFakeRepo(), nil, nil)

	assert.NotPanics(t, func() {
		n.safeCall(func() { panic("channel blew up") }, "testDelivery")
	})
}
