package core

// HandoffRecord is the audit view of one control transfer, derived purely
// from handoff messages in the transcript.
type HandoffRecord struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Reason        string `json:"reason,omitempty"`
	SequenceIndex int    `json:"sequence_index"`
}

// HandoffRecords reconstructs the control-transfer history from the message
// sequence alone. Both handoff_request and handoff_back markers contribute a
// record, in transcript order.
func HandoffRecords(t Transcript) []HandoffRecord {
	var records []HandoffRecord
	for _, m := range t {
		if !m.IsHandoff() {
			continue
		}
		records = append(records, HandoffRecord{
			From:          m.Sender,
			To:            m.Recipient,
			Reason:        m.Content,
			SequenceIndex: m.SequenceIndex,
		})
	}
	return records
}
