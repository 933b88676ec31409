package transport

import (
	"testing"

	"github.com/brineforge/arena-server/internal/world"
)

func TestEncodeOutboundWrapsEnvelope(t *testing.T) {
	raw, err := EncodeOutbound(Tick{Counter: 42, Mode: 1})
	if err != nil {
		t.Fatal(err)
	}
	var envelope wireEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Type != "tick" {
		t.Fatalf("expected tag %q, got %q", "tick", envelope.Type)
	}
}

func TestDecodeInboundResolvesRegisteredTypes(t *testing.T) {
	raw := []byte(`{"type":"connect","data":{"password":"pw","name":"alice","mode":"normal"}}`)
	decoded, err := DecodeInbound(raw)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := decoded.(*Connect)
	if !ok {
		t.Fatalf("expected *Connect, got %T", decoded)
	}
	if c.Name != "alice" || c.Mode != "normal" || c.Password != "pw" {
		t.Fatalf("unexpected decode: %+v", c)
	}
}

func TestDecodeInboundRejectsUnknownTag(t *testing.T) {
	if _, err := DecodeInbound([]byte(`{"type":"nonsense","data":{}}`)); err == nil {
		t.Fatal("expected an error for an unregistered tag")
	}
}

// The chat and upgradeThing tags are shared between directions: the
// outbound relay types must encode under the inbound frames' tags.
func TestSharedWireTags(t *testing.T) {
	if tag, ok := OutboundTypeFor(ChatRelay{}); !ok || tag != "chat" {
		t.Fatalf("expected ChatRelay to encode as chat, got %q", tag)
	}
	if tag, ok := OutboundTypeFor(UpgradeApplied{ID: 1, Tag: "b"}); !ok || tag != "upgradeThing" {
		t.Fatalf("expected UpgradeApplied to encode as upgradeThing, got %q", tag)
	}
	if _, ok := InboundTypeFor("chat"); !ok {
		t.Fatal("expected inbound chat registered")
	}
}

func TestOutboundRoundTripNewFrame(t *testing.T) {
	frame := New{ID: 7, Kind: 'f', X: 1, Y: 2, A: 0.5, Editable: true, Banner: world.BannerID(3), W: 48, H: 36}
	raw, err := EncodeOutbound(frame)
	if err != nil {
		t.Fatal(err)
	}
	var envelope wireEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Type != "new" {
		t.Fatalf("expected tag new, got %q", envelope.Type)
	}
	var back New
	if err := json.Unmarshal(envelope.Data, &back); err != nil {
		t.Fatal(err)
	}
	if back != frame {
		t.Fatalf("round trip mismatch: %+v != %+v", back, frame)
	}
}
