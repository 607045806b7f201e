// Package playbook defines the final sales playbook document and its
// persistence.
package playbook

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/zen-systems/dealbook/pkg/intel"
)

// Document is the assembled sales playbook: the terminal artifact of a
// full pipeline run. Immutable once created.
type Document struct {
	ID            string `json:"id"`
	GeneratedDate string `json:"generated_date"`

	VendorName   string `json:"vendor_name"`
	ProspectName string `json:"prospect_name"`

	ExecutiveSummary string   `json:"executive_summary"`
	PriorityPersonas []string `json:"priority_personas"`
	QuickWins        []string `json:"quick_wins"`
	SuccessMetrics   []string `json:"success_metrics"`

	EmailSequences []intel.EmailSequence `json:"email_sequences"`
	TalkTracks     []intel.TalkTrack     `json:"talk_tracks"`
	BattleCards    []intel.BattleCard    `json:"battle_cards"`

	Hash string `json:"hash"`
}

// New stamps a document with its identity, generation date, and
// content hash.
func New(doc Document) Document {
	doc.ID = generateID()
	doc.GeneratedDate = time.Now().UTC().Format("2006-01-02")
	doc.Hash = computeHash(doc)
	return doc
}

func computeHash(doc Document) string {
	doc.ID = ""
	doc.Hash = ""
	payload, _ := json.Marshal(doc)
	h := sha256.Sum256(payload)
	return hex.EncodeToString(h[:])[:16]
}

func generateID() string {
	h := sha256.New()
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(time.Now().UnixNano()))
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))[:12]
}
