package livekit

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = time.Hour

var ErrMissingCredentials = errors.New("livekit api key and secret are required")

// VideoGrant mirrors the LiveKit access-token grant: which room the
// participant may join and what they may do there.
type VideoGrant struct {
	Room         string `json:"room"`
	RoomJoin     bool   `json:"roomJoin"`
	CanPublish   bool   `json:"canPublish"`
	CanSubscribe bool   `json:"canSubscribe"`
}

type AccessClaims struct {
	Name  string     `json:"name"`
	Video VideoGrant `json:"video"`
	jwt.RegisteredClaims
}

type TokenOptions struct {
	RoomName        string
	ParticipantName string
	ParticipantID   string
}

// Service issues short-lived access credentials for the real-time media
// room. It never manages media itself.
type Service interface {
	GenerateToken(opts TokenOptions) (string, error)
	ServerURL() string
}

type service struct {
	apiKey    string
	apiSecret string
	url       string
}

func NewService(apiKey, apiSecret, url string) (Service, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, ErrMissingCredentials
	}
	return &service{apiKey: apiKey, apiSecret: apiSecret, url: url}, nil
}

// RoomName derives the media room for an interview. The interviewer agent
// and the candidate both rely on this exact derivation to meet in the same
// room, so it must never change shape.
func RoomName(interviewID uuid.UUID) string {
	return fmt.Sprintf("interview-%s", interviewID)
}

func (s *service) GenerateToken(opts TokenOptions) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Name: opts.ParticipantName,
		Video: VideoGrant{
			Room:         opts.RoomName,
			RoomJoin:     true,
			CanPublish:   true,
			CanSubscribe: true,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.apiKey,
			Subject:   opts.ParticipantID,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.apiSecret))
}

func (s *service) ServerURL() string {
	return s.url
}
