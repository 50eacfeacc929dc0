package inspect

import (
	"encoding/hex"
	"unicode/utf8"

	"github.com/danmuck/folkways/internal/protocol"
)

// MessageView is the JSON shape of one decoded message.
type MessageView struct {
	Type             string   `json:"type"`
	TypeCode         uint8    `json:"type_code"`
	RequiresResponse bool     `json:"requires_response"`
	IsControl        bool     `json:"is_control"`
	Version          uint8    `json:"version"`
	Flags            []string `json:"flags"`
	FlagBits         uint8    `json:"flag_bits"`
	Priority         string   `json:"priority"`
	BodyLen          uint32   `json:"body_len"`
	FooterLen        uint16   `json:"footer_len"`
	Timestamp        uint64   `json:"timestamp"`
	Checksum         uint32   `json:"checksum"`
	BodyHex          string   `json:"body_hex"`
	BodyText         *string  `json:"body_text,omitempty"`
	Topic            *string  `json:"topic,omitempty"`
	TotalSize        int      `json:"total_size"`
}

// NewView describes msg. BodyText is set only for valid UTF-8 bodies.
func NewView(msg *protocol.Message) MessageView {
	h := msg.Header
	mt, _ := h.MessageType()
	v := MessageView{
		Type:             mt.String(),
		TypeCode:         h.Type,
		RequiresResponse: mt.RequiresResponse(),
		IsControl:        mt.IsControl(),
		Version:          h.Version,
		Flags:            h.Flags().Names(),
		FlagBits:         h.FlagBits,
		Priority:         h.Priority().String(),
		BodyLen:          h.BodyLen,
		FooterLen:        h.FooterLen,
		Timestamp:        h.Timestamp,
		Checksum:         h.Checksum,
		BodyHex:          hex.EncodeToString(msg.Body),
		TotalSize:        msg.TotalSize(),
	}
	if utf8.Valid(msg.Body) {
		text := string(msg.Body)
		v.BodyText = &text
	}
	if msg.Footer != nil {
		if topic, ok := msg.Footer.Topic(); ok {
			v.Topic = &topic
		}
	}
	return v
}

// TypeView describes one message type.
type TypeView struct {
	Name             string `json:"name"`
	Code             uint8  `json:"code"`
	RequiresResponse bool   `json:"requires_response"`
	IsControl        bool   `json:"is_control"`
}

func NewTypeView(mt protocol.MessageType) TypeView {
	return TypeView{
		Name:             mt.String(),
		Code:             uint8(mt),
		RequiresResponse: mt.RequiresResponse(),
		IsControl:        mt.IsControl(),
	}
}
