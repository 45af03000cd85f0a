package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid. Keys
// must carry a type prefix so different record kinds never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TopicUUID returns the id for a topic slug.
func TopicUUID(slug string) uuid.UUID {
	return UUID("go-faqs:topic:" + strings.ToLower(strings.TrimSpace(slug)))
}

// QuestionUUID returns the id for a question slug within a topic.
func QuestionUUID(topicID uuid.UUID, slug string) uuid.UUID {
	return UUID("go-faqs:question:" + topicID.String() + ":" + strings.ToLower(strings.TrimSpace(slug)))
}
