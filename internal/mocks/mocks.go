package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
	"onemsu-server/internal/storage"
)

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, senderID int, senderName, content, roomID, attachmentURL, attachmentType string) (models.Message, error) {
	args := m.Called(ctx, senderID, senderName, content, roomID, attachmentURL, attachmentType)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) History(ctx context.Context, roomID string, before *time.Time, limit int) ([]models.Message, error) {
	args := m.Called(ctx, roomID, before, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	args := m.Called(ctx, messageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) EditMessage(ctx context.Context, messageID, requesterID int, content string) (models.Message, error) {
	args := m.Called(ctx, messageID, requesterID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) DeleteMessage(ctx context.Context, messageID, requesterID int) error {
	args := m.Called(ctx, messageID, requesterID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) RenameSender(ctx context.Context, userID int, newName string) error {
	args := m.Called(ctx, userID, newName)
	return args.Error(0)
}

func (m *MessageRepositoryMock) FeedForUser(ctx context.Context, userID, limit int) ([]models.Message, error) {
	args := m.Called(ctx, userID, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

type ReactionRepositoryMock struct {
	mock.Mock
}

func (m *ReactionRepositoryMock) Toggle(ctx context.Context, messageID, userID int, emoji string) error {
	args := m.Called(ctx, messageID, userID, emoji)
	return args.Error(0)
}

func (m *ReactionRepositoryMock) AggregatesFor(ctx context.Context, messageIDs []int, viewerID int) (map[int][]models.ReactionCount, map[int][]string, error) {
	args := m.Called(ctx, messageIDs, viewerID)
	var counts map[int][]models.ReactionCount
	if val := args.Get(0); val != nil {
		counts = val.(map[int][]models.ReactionCount)
	}
	var mine map[int][]string
	if val := args.Get(1); val != nil {
		mine = val.(map[int][]string)
	}
	return counts, mine, args.Error(2)
}

type ReceiptRepositoryMock struct {
	mock.Mock
}

func (m *ReceiptRepositoryMock) MarkSeen(ctx context.Context, userID int, roomID string, lastRead time.Time) error {
	args := m.Called(ctx, userID, roomID, lastRead)
	return args.Error(0)
}

func (m *ReceiptRepositoryMock) LastRead(ctx context.Context, userID int, roomID string) (*time.Time, error) {
	args := m.Called(ctx, userID, roomID)
	var ts *time.Time
	if val := args.Get(0); val != nil {
		ts = val.(*time.Time)
	}
	return ts, args.Error(1)
}

type FollowRepositoryMock struct {
	mock.Mock
}

func (m *FollowRepositoryMock) Follow(ctx context.Context, followerID, followeeID int) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *FollowRepositoryMock) Unfollow(ctx context.Context, followerID, followeeID int) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *FollowRepositoryMock) Stats(ctx context.Context, targetID, viewerID int) (models.FollowStats, error) {
	args := m.Called(ctx, targetID, viewerID)
	var stats models.FollowStats
	if val := args.Get(0); val != nil {
		stats = val.(models.FollowStats)
	}
	return stats, args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, name, email, passwordHash, campus string) (models.User, error) {
	args := m.Called(ctx, name, email, passwordHash, campus)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) (models.User, error) {
	args := m.Called(ctx, userID, upd)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

type GroupRepositoryMock struct {
	mock.Mock
}

func (m *GroupRepositoryMock) CreateGroup(ctx context.Context, name, description, campus, logoURL string) (models.Group, error) {
	args := m.Called(ctx, name, description, campus, logoURL)
	var group models.Group
	if val := args.Get(0); val != nil {
		group = val.(models.Group)
	}
	return group, args.Error(1)
}

func (m *GroupRepositoryMock) ListGroups(ctx context.Context, campus string) ([]models.Group, error) {
	args := m.Called(ctx, campus)
	var groups []models.Group
	if val := args.Get(0); val != nil {
		groups = val.([]models.Group)
	}
	return groups, args.Error(1)
}

func (m *GroupRepositoryMock) GetGroup(ctx context.Context, groupID int) (models.Group, error) {
	args := m.Called(ctx, groupID)
	var group models.Group
	if val := args.Get(0); val != nil {
		group = val.(models.Group)
	}
	return group, args.Error(1)
}

type FreedomRepositoryMock struct {
	mock.Mock
}

func (m *FreedomRepositoryMock) CreatePost(ctx context.Context, userID *int, alias, content, campus, imageURL string) (models.FreedomPost, error) {
	args := m.Called(ctx, userID, alias, content, campus, imageURL)
	var post models.FreedomPost
	if val := args.Get(0); val != nil {
		post = val.(models.FreedomPost)
	}
	return post, args.Error(1)
}

func (m *FreedomRepositoryMock) ListPosts(ctx context.Context, campus string, limit int) ([]models.FreedomPost, error) {
	args := m.Called(ctx, campus, limit)
	var posts []models.FreedomPost
	if val := args.Get(0); val != nil {
		posts = val.([]models.FreedomPost)
	}
	return posts, args.Error(1)
}

func (m *FreedomRepositoryMock) LikePost(ctx context.Context, postID int) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *FreedomRepositoryMock) ReportPost(ctx context.Context, postID int) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

type SettingsRepositoryMock struct {
	mock.Mock
}

func (m *SettingsRepositoryMock) GetSettings(ctx context.Context) (models.OwnerSettings, error) {
	args := m.Called(ctx)
	var settings models.OwnerSettings
	if val := args.Get(0); val != nil {
		settings = val.(models.OwnerSettings)
	}
	return settings, args.Error(1)
}

func (m *SettingsRepositoryMock) UpdateSettings(ctx context.Context, settings models.OwnerSettings) (models.OwnerSettings, error) {
	args := m.Called(ctx, settings)
	var updated models.OwnerSettings
	if val := args.Get(0); val != nil {
		updated = val.(models.OwnerSettings)
	}
	return updated, args.Error(1)
}

func (m *SettingsRepositoryMock) CreateFeedback(ctx context.Context, userID int, content string) (models.Feedback, error) {
	args := m.Called(ctx, userID, content)
	var fb models.Feedback
	if val := args.Get(0); val != nil {
		fb = val.(models.Feedback)
	}
	return fb, args.Error(1)
}

type BlobStoreMock struct {
	mock.Mock
}

func (m *BlobStoreMock) PresignUpload(ctx context.Context, fileName, fileType string) (string, string, error) {
	args := m.Called(ctx, fileName, fileType)
	return args.String(0), args.String(1), args.Error(2)
}

var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.ReactionRepository = (*ReactionRepositoryMock)(nil)
var _ repositories.ReceiptRepository = (*ReceiptRepositoryMock)(nil)
var _ repositories.FollowRepository = (*FollowRepositoryMock)(nil)
var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.GroupRepository = (*GroupRepositoryMock)(nil)
var _ repositories.FreedomRepository = (*FreedomRepositoryMock)(nil)
var _ repositories.SettingsRepository = (*SettingsRepositoryMock)(nil)
var _ storage.BlobStore = (*BlobStoreMock)(nil)
