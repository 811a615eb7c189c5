// Package templates renders the transactional emails sent by the worker.
package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

const Welcome = "welcome"

// EmailData holds the fields available to every template.
type EmailData struct {
	Name    string `json:"Name"`
	Email   string `json:"Email"`
	AppName string `json:"AppName"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// FromMap is the inverse of ToMap; unknown keys are ignored.
func FromMap(m map[string]any) (EmailData, error) {
	var d EmailData
	b, err := json.Marshal(m)
	if err != nil {
		return d, err
	}
	err = json.Unmarshal(b, &d)
	return d, err
}

var subjects = map[string]string{
	Welcome: "Welcome to {{.AppName}}",
}

// Render returns subject, text and html bodies for the named template.
func Render(name string, data EmailData) (string, string, string, error) {
	subjTpl, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
	subject, err := execText("subject", subjTpl, data)
	if err != nil {
		return "", "", "", err
	}

	textSrc, err := FS.ReadFile(name + ".txt.tmpl")
	if err != nil {
		return "", "", "", err
	}
	text, err := execText(name, string(textSrc), data)
	if err != nil {
		return "", "", "", err
	}

	h, err := htmpl.ParseFS(FS, name+".html.tmpl")
	if err != nil {
		return "", "", "", err
	}
	var hb bytes.Buffer
	if err := h.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	return subject, text, hb.String(), nil
}

func execText(name, src string, data EmailData) (string, error) {
	t, err := texttpl.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
