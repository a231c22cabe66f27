package fsmx

import "testing"

func TestSttKeyPacking(t *testing.T) {
	key := sttKey[int32](0xDEADBEEF, 0x1234)
	if key>>32 != 0xDEADBEEF {
		t.Errorf("state id must land in the high half, got %#x", key>>32)
	}
	if key&0xFFFFFFFF != 0x1234 {
		t.Errorf("event id must land in the low half, got %#x", key&0xFFFFFFFF)
	}
}

func TestSttKeySignedEvent(t *testing.T) {
	// Negative event ids must not bleed into the state half.
	key := sttKey[int32](1, -1)
	if key>>32 != 1 {
		t.Errorf("sign extension corrupted the state half: %#x", key)
	}
	if key&0xFFFFFFFF != 0xFFFFFFFF {
		t.Errorf("unexpected low half: %#x", key)
	}
}
