package hub

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Hand-maintained protowire codec for the hub message set. The upstream hub
// protocol ships no Go bindings; field numbers below follow its published
// schema and must not be renumbered.

var errTruncated = fmt.Errorf("truncated wire data")

func parseErr(n int) error {
	if err := protowire.ParseError(n); err != nil {
		return err
	}
	return errTruncated
}

// skipField discards an unknown field of the given type.
func skipField(b []byte, typ protowire.Type) (int, error) {
	n := protowire.ConsumeFieldValue(0, typ, b)
	if n < 0 {
		return 0, parseErr(n)
	}
	return n, nil
}

// consumeUints decodes a repeated varint field, accepting both packed and
// unpacked encodings.
func consumeUints(b []byte, typ protowire.Type) ([]uint64, int, error) {
	if typ == protowire.VarintType {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, parseErr(n)
		}
		return []uint64{v}, n, nil
	}
	packed, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, parseErr(n)
	}
	var out []uint64
	for len(packed) > 0 {
		v, m := protowire.ConsumeVarint(packed)
		if m < 0 {
			return nil, 0, parseErr(m)
		}
		out = append(out, v)
		packed = packed[m:]
	}
	return out, n, nil
}

func appendPacked(b []byte, num protowire.Number, vals []uint64) []byte {
	if len(vals) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vals {
		packed = protowire.AppendVarint(packed, v)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// CastID wire: fid=1, hash=2

func marshalCastID(c *CastID) []byte {
	var b []byte
	if c.Fid != 0 {
		b = appendVarintField(b, 1, c.Fid)
	}
	if len(c.Hash) > 0 {
		b = appendBytesField(b, 2, c.Hash)
	}
	return b
}

func unmarshalCastID(b []byte) (*CastID, error) {
	c := &CastID{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			c.Fid = v
			b = b[m:]
		case 2:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			c.Hash = append([]byte(nil), v...)
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return c, nil
}

// Embed wire: oneof { url=1, cast_id=2 }

func marshalEmbed(e *Embed) []byte {
	var b []byte
	if e.CastID != nil {
		b = appendBytesField(b, 2, marshalCastID(e.CastID))
	} else {
		b = appendStringField(b, 1, e.URL)
	}
	return b
}

func unmarshalEmbed(b []byte) (*Embed, error) {
	e := &Embed{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			e.URL = v
			b = b[m:]
		case 2:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			cid, err := unmarshalCastID(v)
			if err != nil {
				return nil, err
			}
			e.CastID = cid
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return e, nil
}

// CastAddBody wire: mentions=2, parent_cast_id=3, text=4,
// mentions_positions=5, embeds=6, parent_url=7

func marshalCastAddBody(c *CastAddBody) []byte {
	var b []byte
	b = appendPacked(b, 2, c.Mentions)
	if c.ParentCastID != nil {
		b = appendBytesField(b, 3, marshalCastID(c.ParentCastID))
	}
	if c.Text != "" {
		b = appendStringField(b, 4, c.Text)
	}
	if len(c.MentionsPositions) > 0 {
		vals := make([]uint64, len(c.MentionsPositions))
		for i, p := range c.MentionsPositions {
			vals[i] = uint64(p)
		}
		b = appendPacked(b, 5, vals)
	}
	for i := range c.Embeds {
		b = appendBytesField(b, 6, marshalEmbed(&c.Embeds[i]))
	}
	if c.ParentURL != "" {
		b = appendStringField(b, 7, c.ParentURL)
	}
	return b
}

func unmarshalCastAddBody(b []byte) (*CastAddBody, error) {
	c := &CastAddBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 2:
			vals, m, err := consumeUints(b, typ)
			if err != nil {
				return nil, err
			}
			c.Mentions = append(c.Mentions, vals...)
			b = b[m:]
		case 3:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			cid, err := unmarshalCastID(v)
			if err != nil {
				return nil, err
			}
			c.ParentCastID = cid
			b = b[m:]
		case 4:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			c.Text = v
			b = b[m:]
		case 5:
			vals, m, err := consumeUints(b, typ)
			if err != nil {
				return nil, err
			}
			for _, v := range vals {
				c.MentionsPositions = append(c.MentionsPositions, uint32(v))
			}
			b = b[m:]
		case 6:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			e, err := unmarshalEmbed(v)
			if err != nil {
				return nil, err
			}
			c.Embeds = append(c.Embeds, *e)
			b = b[m:]
		case 7:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			c.ParentURL = v
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return c, nil
}

// CastRemoveBody wire: target_hash=1

func marshalCastRemoveBody(c *CastRemoveBody) []byte {
	var b []byte
	if len(c.TargetHash) > 0 {
		b = appendBytesField(b, 1, c.TargetHash)
	}
	return b
}

func unmarshalCastRemoveBody(b []byte) (*CastRemoveBody, error) {
	c := &CastRemoveBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			c.TargetHash = append([]byte(nil), v...)
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return c, nil
}

// ReactionBody wire: type=1, target_cast_id=2, target_url=3

func marshalReactionBody(r *ReactionBody) []byte {
	var b []byte
	if r.Type != ReactionTypeNone {
		b = appendVarintField(b, 1, uint64(r.Type))
	}
	if r.TargetCastID != nil {
		b = appendBytesField(b, 2, marshalCastID(r.TargetCastID))
	} else if r.TargetURL != "" {
		b = appendStringField(b, 3, r.TargetURL)
	}
	return b
}

func unmarshalReactionBody(b []byte) (*ReactionBody, error) {
	r := &ReactionBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			r.Type = ReactionType(v)
			b = b[m:]
		case 2:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			cid, err := unmarshalCastID(v)
			if err != nil {
				return nil, err
			}
			r.TargetCastID = cid
			b = b[m:]
		case 3:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			r.TargetURL = v
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return r, nil
}

// LinkBody wire: type=1, display_timestamp=2, target_fid=3

func marshalLinkBody(l *LinkBody) []byte {
	var b []byte
	if l.Type != "" {
		b = appendStringField(b, 1, l.Type)
	}
	if l.DisplayTimestamp != nil {
		b = appendVarintField(b, 2, uint64(*l.DisplayTimestamp))
	}
	if l.TargetFid != 0 {
		b = appendVarintField(b, 3, l.TargetFid)
	}
	return b
}

func unmarshalLinkBody(b []byte) (*LinkBody, error) {
	l := &LinkBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			l.Type = v
			b = b[m:]
		case 2:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			ts := uint32(v)
			l.DisplayTimestamp = &ts
			b = b[m:]
		case 3:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			l.TargetFid = v
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return l, nil
}

// VerificationAddAddressBody wire: address=1, claim_signature=2, block_hash=3,
// verification_type=4, chain_id=5, protocol=7

func marshalVerificationAddAddressBody(v *VerificationAddAddressBody) []byte {
	var b []byte
	if len(v.Address) > 0 {
		b = appendBytesField(b, 1, v.Address)
	}
	if len(v.ClaimSignature) > 0 {
		b = appendBytesField(b, 2, v.ClaimSignature)
	}
	if len(v.BlockHash) > 0 {
		b = appendBytesField(b, 3, v.BlockHash)
	}
	if v.VerificationType != 0 {
		b = appendVarintField(b, 4, uint64(v.VerificationType))
	}
	if v.ChainID != 0 {
		b = appendVarintField(b, 5, uint64(v.ChainID))
	}
	if v.Protocol != ProtocolEthereum {
		b = appendVarintField(b, 7, uint64(v.Protocol))
	}
	return b
}

func unmarshalVerificationAddAddressBody(b []byte) (*VerificationAddAddressBody, error) {
	v := &VerificationAddAddressBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1, 2, 3:
			d, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			cp := append([]byte(nil), d...)
			switch num {
			case 1:
				v.Address = cp
			case 2:
				v.ClaimSignature = cp
			case 3:
				v.BlockHash = cp
			}
			b = b[m:]
		case 4, 5, 7:
			d, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			switch num {
			case 4:
				v.VerificationType = uint32(d)
			case 5:
				v.ChainID = uint32(d)
			case 7:
				v.Protocol = Protocol(d)
			}
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return v, nil
}

// VerificationRemoveBody wire: address=1, protocol=2

func marshalVerificationRemoveBody(v *VerificationRemoveBody) []byte {
	var b []byte
	if len(v.Address) > 0 {
		b = appendBytesField(b, 1, v.Address)
	}
	if v.Protocol != ProtocolEthereum {
		b = appendVarintField(b, 2, uint64(v.Protocol))
	}
	return b
}

func unmarshalVerificationRemoveBody(b []byte) (*VerificationRemoveBody, error) {
	v := &VerificationRemoveBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			d, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			v.Address = append([]byte(nil), d...)
			b = b[m:]
		case 2:
			d, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			v.Protocol = Protocol(d)
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return v, nil
}

// UserDataBody wire: type=1, value=2

func marshalUserDataBody(u *UserDataBody) []byte {
	var b []byte
	if u.Type != UserDataTypeNone {
		b = appendVarintField(b, 1, uint64(u.Type))
	}
	if u.Value != "" {
		b = appendStringField(b, 2, u.Value)
	}
	return b
}

func unmarshalUserDataBody(b []byte) (*UserDataBody, error) {
	u := &UserDataBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			u.Type = UserDataType(v)
			b = b[m:]
		case 2:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			u.Value = v
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return u, nil
}

// UserNameProof wire: timestamp=1, name=2, owner=3, signature=4, fid=5, type=6

func marshalUserNameProof(p *UserNameProof) []byte {
	var b []byte
	if p.Timestamp != 0 {
		b = appendVarintField(b, 1, p.Timestamp)
	}
	if len(p.Name) > 0 {
		b = appendBytesField(b, 2, p.Name)
	}
	if len(p.Owner) > 0 {
		b = appendBytesField(b, 3, p.Owner)
	}
	if len(p.Signature) > 0 {
		b = appendBytesField(b, 4, p.Signature)
	}
	if p.Fid != 0 {
		b = appendVarintField(b, 5, p.Fid)
	}
	if p.Type != UserNameTypeNone {
		b = appendVarintField(b, 6, uint64(p.Type))
	}
	return b
}

func unmarshalUserNameProof(b []byte) (*UserNameProof, error) {
	p := &UserNameProof{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1, 5, 6:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			switch num {
			case 1:
				p.Timestamp = v
			case 5:
				p.Fid = v
			case 6:
				p.Type = UserNameType(v)
			}
			b = b[m:]
		case 2, 3, 4:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			cp := append([]byte(nil), v...)
			switch num {
			case 2:
				p.Name = cp
			case 3:
				p.Owner = cp
			case 4:
				p.Signature = cp
			}
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return p, nil
}

// MessageData wire: type=1, fid=2, timestamp=3, network=4, cast_add_body=5,
// cast_remove_body=6, reaction_body=7, verification_add_address_body=9,
// verification_remove_body=10, user_data_body=12, link_body=14,
// username_proof_body=15

// MarshalMessageData serializes a MessageData to wire bytes.
func MarshalMessageData(d *MessageData) []byte {
	var b []byte
	if d.Type != MessageTypeNone {
		b = appendVarintField(b, 1, uint64(d.Type))
	}
	if d.Fid != 0 {
		b = appendVarintField(b, 2, d.Fid)
	}
	if d.Timestamp != 0 {
		b = appendVarintField(b, 3, uint64(d.Timestamp))
	}
	if d.Network != FarcasterNetworkNone {
		b = appendVarintField(b, 4, uint64(d.Network))
	}
	switch {
	case d.CastAddBody != nil:
		b = appendBytesField(b, 5, marshalCastAddBody(d.CastAddBody))
	case d.CastRemoveBody != nil:
		b = appendBytesField(b, 6, marshalCastRemoveBody(d.CastRemoveBody))
	case d.ReactionBody != nil:
		b = appendBytesField(b, 7, marshalReactionBody(d.ReactionBody))
	case d.VerificationAddAddressBody != nil:
		b = appendBytesField(b, 9, marshalVerificationAddAddressBody(d.VerificationAddAddressBody))
	case d.VerificationRemoveBody != nil:
		b = appendBytesField(b, 10, marshalVerificationRemoveBody(d.VerificationRemoveBody))
	case d.UserDataBody != nil:
		b = appendBytesField(b, 12, marshalUserDataBody(d.UserDataBody))
	case d.LinkBody != nil:
		b = appendBytesField(b, 14, marshalLinkBody(d.LinkBody))
	case d.UsernameProofBody != nil:
		b = appendBytesField(b, 15, marshalUserNameProof(d.UsernameProofBody))
	}
	return b
}

// UnmarshalMessageData parses wire bytes into a MessageData.
func UnmarshalMessageData(b []byte) (*MessageData, error) {
	d := &MessageData{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1, 2, 3, 4:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			switch num {
			case 1:
				d.Type = MessageType(v)
			case 2:
				d.Fid = v
			case 3:
				d.Timestamp = uint32(v)
			case 4:
				d.Network = FarcasterNetwork(v)
			}
			b = b[m:]
		case 5, 6, 7, 9, 10, 12, 14, 15:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			var err error
			switch num {
			case 5:
				d.CastAddBody, err = unmarshalCastAddBody(v)
			case 6:
				d.CastRemoveBody, err = unmarshalCastRemoveBody(v)
			case 7:
				d.ReactionBody, err = unmarshalReactionBody(v)
			case 9:
				d.VerificationAddAddressBody, err = unmarshalVerificationAddAddressBody(v)
			case 10:
				d.VerificationRemoveBody, err = unmarshalVerificationRemoveBody(v)
			case 12:
				d.UserDataBody, err = unmarshalUserDataBody(v)
			case 14:
				d.LinkBody, err = unmarshalLinkBody(v)
			case 15:
				d.UsernameProofBody, err = unmarshalUserNameProof(v)
			}
			if err != nil {
				return nil, err
			}
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return d, nil
}

// Message wire: data=1, hash=2, hash_scheme=3, signature=4,
// signature_scheme=5, signer=6, data_bytes=7

// MarshalMessage serializes a Message to wire bytes. DataBytes is preferred
// over re-encoding Data so the hash commitment survives round trips.
func MarshalMessage(msg *Message) []byte {
	var b []byte
	dataBytes := msg.DataBytes
	if len(dataBytes) == 0 && msg.Data != nil {
		dataBytes = MarshalMessageData(msg.Data)
	}
	if msg.Data != nil {
		b = appendBytesField(b, 1, MarshalMessageData(msg.Data))
	}
	if len(msg.Hash) > 0 {
		b = appendBytesField(b, 2, msg.Hash)
	}
	if msg.HashScheme != HashSchemeNone {
		b = appendVarintField(b, 3, uint64(msg.HashScheme))
	}
	if len(msg.Signature) > 0 {
		b = appendBytesField(b, 4, msg.Signature)
	}
	if msg.SignatureScheme != SignatureSchemeNone {
		b = appendVarintField(b, 5, uint64(msg.SignatureScheme))
	}
	if len(msg.Signer) > 0 {
		b = appendBytesField(b, 6, msg.Signer)
	}
	if len(dataBytes) > 0 {
		b = appendBytesField(b, 7, dataBytes)
	}
	return b
}

// UnmarshalMessage parses wire bytes into a Message. When the frame carries
// data_bytes, Data is decoded from them; otherwise from the data field.
func UnmarshalMessage(b []byte) (*Message, error) {
	msg := &Message{}
	var dataField []byte
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			dataField = append([]byte(nil), v...)
			b = b[m:]
		case 2, 4, 6, 7:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			cp := append([]byte(nil), v...)
			switch num {
			case 2:
				msg.Hash = cp
			case 4:
				msg.Signature = cp
			case 6:
				msg.Signer = cp
			case 7:
				msg.DataBytes = cp
			}
			b = b[m:]
		case 3, 5:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			switch num {
			case 3:
				msg.HashScheme = HashScheme(v)
			case 5:
				msg.SignatureScheme = SignatureScheme(v)
			}
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	encoded := msg.DataBytes
	if len(encoded) == 0 {
		encoded = dataField
	}
	if len(encoded) > 0 {
		data, err := UnmarshalMessageData(encoded)
		if err != nil {
			return nil, err
		}
		msg.Data = data
	}
	return msg, nil
}

func marshalMergeMessageBody(mb *MergeMessageBody) []byte {
	var b []byte
	if mb.Message != nil {
		b = appendBytesField(b, 1, MarshalMessage(mb.Message))
	}
	for _, dm := range mb.DeletedMessages {
		b = appendBytesField(b, 2, MarshalMessage(dm))
	}
	return b
}

func unmarshalMergeMessageBody(b []byte) (*MergeMessageBody, error) {
	mb := &MergeMessageBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1, 2:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			msg, err := UnmarshalMessage(v)
			if err != nil {
				return nil, err
			}
			if num == 1 {
				mb.Message = msg
			} else {
				mb.DeletedMessages = append(mb.DeletedMessages, msg)
			}
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return mb, nil
}

func marshalSingleMessageBody(msg *Message) []byte {
	var b []byte
	if msg != nil {
		b = appendBytesField(b, 1, MarshalMessage(msg))
	}
	return b
}

func unmarshalSingleMessageBody(b []byte) (*Message, error) {
	var msg *Message
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			var err error
			msg, err = UnmarshalMessage(v)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return msg, nil
}

func marshalMergeUserNameProofBody(mb *MergeUserNameProofBody) []byte {
	var b []byte
	if mb.UsernameProof != nil {
		b = appendBytesField(b, 1, marshalUserNameProof(mb.UsernameProof))
	}
	if mb.DeletedUsernameProof != nil {
		b = appendBytesField(b, 2, marshalUserNameProof(mb.DeletedUsernameProof))
	}
	return b
}

func unmarshalMergeUserNameProofBody(b []byte) (*MergeUserNameProofBody, error) {
	mb := &MergeUserNameProofBody{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1, 2:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			p, err := unmarshalUserNameProof(v)
			if err != nil {
				return nil, err
			}
			if num == 1 {
				mb.UsernameProof = p
			} else {
				mb.DeletedUsernameProof = p
			}
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return mb, nil
}

// Event wire: type=1, id=2, merge_message_body=3, prune_message_body=4,
// revoke_message_body=5, merge_username_proof_body=6

// MarshalEvent serializes a hub event frame.
func MarshalEvent(ev *Event) []byte {
	var b []byte
	if ev.Type != EventTypeNone {
		b = appendVarintField(b, 1, uint64(ev.Type))
	}
	if ev.ID != 0 {
		b = appendVarintField(b, 2, ev.ID)
	}
	switch {
	case ev.MergeMessageBody != nil:
		b = appendBytesField(b, 3, marshalMergeMessageBody(ev.MergeMessageBody))
	case ev.PruneMessageBody != nil:
		b = appendBytesField(b, 4, marshalSingleMessageBody(ev.PruneMessageBody.Message))
	case ev.RevokeMessageBody != nil:
		b = appendBytesField(b, 5, marshalSingleMessageBody(ev.RevokeMessageBody.Message))
	case ev.MergeUserNameProofBody != nil:
		b = appendBytesField(b, 6, marshalMergeUserNameProofBody(ev.MergeUserNameProofBody))
	}
	return b
}

// UnmarshalEvent parses one subscription frame.
func UnmarshalEvent(b []byte) (*Event, error) {
	ev := &Event{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1, 2:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			if num == 1 {
				ev.Type = EventType(v)
			} else {
				ev.ID = v
			}
			b = b[m:]
		case 3:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			mb, err := unmarshalMergeMessageBody(v)
			if err != nil {
				return nil, err
			}
			ev.MergeMessageBody = mb
			b = b[m:]
		case 4, 5:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			msg, err := unmarshalSingleMessageBody(v)
			if err != nil {
				return nil, err
			}
			if num == 4 {
				ev.PruneMessageBody = &PruneMessageBody{Message: msg}
			} else {
				ev.RevokeMessageBody = &RevokeMessageBody{Message: msg}
			}
			b = b[m:]
		case 6:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			mb, err := unmarshalMergeUserNameProofBody(v)
			if err != nil {
				return nil, err
			}
			ev.MergeUserNameProofBody = mb
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return ev, nil
}

// SubscribeRequest wire: event_types=1, from_id=2

// MarshalSubscribeRequest serializes a subscription request.
func MarshalSubscribeRequest(req *SubscribeRequest) []byte {
	var b []byte
	if len(req.EventTypes) > 0 {
		vals := make([]uint64, len(req.EventTypes))
		for i, t := range req.EventTypes {
			vals[i] = uint64(t)
		}
		b = appendPacked(b, 1, vals)
	}
	if req.FromID != nil {
		b = appendVarintField(b, 2, *req.FromID)
	}
	return b
}

// UnmarshalSubscribeRequest parses a subscription request.
func UnmarshalSubscribeRequest(b []byte) (*SubscribeRequest, error) {
	req := &SubscribeRequest{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			vals, m, err := consumeUints(b, typ)
			if err != nil {
				return nil, err
			}
			for _, v := range vals {
				req.EventTypes = append(req.EventTypes, EventType(v))
			}
			b = b[m:]
		case 2:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			id := v
			req.FromID = &id
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return req, nil
}

// FidRequest wire: fid=1, page_size=2, page_token=3, reverse=4

// MarshalFidRequest serializes an inventory page request.
func MarshalFidRequest(req *FidRequest) []byte {
	var b []byte
	if req.Fid != 0 {
		b = appendVarintField(b, 1, req.Fid)
	}
	if req.PageSize != 0 {
		b = appendVarintField(b, 2, uint64(req.PageSize))
	}
	if len(req.PageToken) > 0 {
		b = appendBytesField(b, 3, req.PageToken)
	}
	if req.Reverse {
		b = appendVarintField(b, 4, 1)
	}
	return b
}

// UnmarshalFidRequest parses an inventory page request.
func UnmarshalFidRequest(b []byte) (*FidRequest, error) {
	req := &FidRequest{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1, 2, 4:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			switch num {
			case 1:
				req.Fid = v
			case 2:
				req.PageSize = uint32(v)
			case 4:
				req.Reverse = v != 0
			}
			b = b[m:]
		case 3:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			req.PageToken = append([]byte(nil), v...)
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return req, nil
}

// MessagesResponse wire: messages=1, next_page_token=2

// MarshalMessagesResponse serializes an inventory page.
func MarshalMessagesResponse(resp *MessagesResponse) []byte {
	var b []byte
	for _, msg := range resp.Messages {
		b = appendBytesField(b, 1, MarshalMessage(msg))
	}
	if len(resp.NextPageToken) > 0 {
		b = appendBytesField(b, 2, resp.NextPageToken)
	}
	return b
}

// UnmarshalMessagesResponse parses an inventory page.
func UnmarshalMessagesResponse(b []byte) (*MessagesResponse, error) {
	resp := &MessagesResponse{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, parseErr(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			msg, err := UnmarshalMessage(v)
			if err != nil {
				return nil, err
			}
			resp.Messages = append(resp.Messages, msg)
			b = b[m:]
		case 2:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, parseErr(m)
			}
			resp.NextPageToken = append([]byte(nil), v...)
			b = b[m:]
		default:
			m, err := skipField(b, typ)
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return resp, nil
}
