package model

import (
	"fmt"
	"strings"
)

// TreatmentKind classifies a treatment.
type TreatmentKind string

const (
	KindMedicine      TreatmentKind = "medicine"
	KindPhysiotherapy TreatmentKind = "physiotherapy"
	KindAesthetic     TreatmentKind = "aesthetic"
	KindDental        TreatmentKind = "dental"
	KindSpiritual     TreatmentKind = "spiritual"
	KindPsychotherapy TreatmentKind = "psychotherapy"
)

// TreatmentKinds lists every kind in the order the form offers them.
var TreatmentKinds = []TreatmentKind{
	KindMedicine,
	KindPhysiotherapy,
	KindAesthetic,
	KindDental,
	KindSpiritual,
	KindPsychotherapy,
}

var kindLabels = map[TreatmentKind]string{
	KindMedicine:      "Medicine",
	KindPhysiotherapy: "Physiotherapy",
	KindAesthetic:     "Aesthetic",
	KindDental:        "Dental",
	KindSpiritual:     "Spiritual",
	KindPsychotherapy: "Psychotherapy",
}

func (k TreatmentKind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

func ParseTreatmentKind(s string) (TreatmentKind, error) {
	k := TreatmentKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kindLabels[k]; !ok {
		return "", fmt.Errorf("unknown treatment kind %q", s)
	}
	return k, nil
}

// TreatmentRecord is a treatment as edited in the form.
// An empty ID means the record has not been saved yet.
type TreatmentRecord struct {
	ID                string        `json:"id,omitempty"`
	Title             string        `json:"title" validate:"required"`
	Kind              TreatmentKind `json:"kind"`
	Description       string        `json:"description"`
	Date              string        `json:"date" validate:"required,datetime=2006-01-02"`
	TreatmentLocation string        `json:"treatment_location" validate:"required"`
	Files             string        `json:"files"`
}

func (t TreatmentRecord) IsNew() bool { return t.ID == "" }

// NewTreatmentRecord returns the empty record a create form starts from.
func NewTreatmentRecord() TreatmentRecord {
	return TreatmentRecord{Kind: KindMedicine}
}

// TreatmentSummary is the treatment list projection.
type TreatmentSummary struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Kind              TreatmentKind `json:"kind"`
	Date              string        `json:"date"`
	TreatmentLocation string        `json:"treatment_location"`
}
