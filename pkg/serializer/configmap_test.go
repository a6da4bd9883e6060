// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/sirius-ms/sirius-go/pkg/header"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{name: "valid", uri: "cm://sirius/job-configs", wantNamespace: "sirius", wantName: "job-configs"},
		{name: "spaces", uri: "cm://sirius / report ", wantNamespace: "sirius", wantName: "report"},
		{name: "missing scheme", uri: "sirius/report", wantErr: true},
		{name: "wrong scheme", uri: "http://sirius/report", wantErr: true},
		{name: "missing name", uri: "cm://sirius/", wantErr: true},
		{name: "missing namespace", uri: "cm:///report", wantErr: true},
		{name: "missing separator", uri: "cm://sirius", wantErr: true},
		{name: "empty", uri: "", wantErr: true},
		{name: "only scheme", uri: "cm://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, name, err := parseConfigMapURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseConfigMapURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if ns != tt.wantNamespace || name != tt.wantName {
				t.Errorf("parseConfigMapURI(%q) = %q, %q", tt.uri, ns, name)
			}
		})
	}
}

func TestNewConfigMapWriter_UnknownFormat(t *testing.T) {
	w := NewConfigMapWriter("sirius", "report", Format("xml"), WithKubeconfig("/tmp/kc"))
	if w.format != FormatJSON {
		t.Errorf("format = %q, want json", w.format)
	}
	if w.kubeconfig != "/tmp/kc" {
		t.Errorf("kubeconfig = %q", w.kubeconfig)
	}
}

type testReport struct {
	header.Header `json:",inline" yaml:",inline"`
	Features      int `json:"features" yaml:"features"`
}

func TestConfigMapWriter_Serialize(t *testing.T) {
	cs := fake.NewClientset()
	ctx := context.Background()

	doc := testReport{Features: 12}
	doc.Init(header.KindProjectReport, header.APIVersion, "v0.3.0")

	w := NewConfigMapWriter("sirius", "report", FormatYAML, WithKubeClient(cs))
	if err := w.Serialize(ctx, &doc); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	cm, err := cs.CoreV1().ConfigMaps("sirius").Get(ctx, "report", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("ConfigMap not created: %v", err)
	}
	if cm.Data[ConfigMapKeyFormat] != "yaml" {
		t.Errorf("format = %q", cm.Data[ConfigMapKeyFormat])
	}
	if cm.Data[ConfigMapKeyKind] != "ProjectReport" {
		t.Errorf("kind = %q", cm.Data[ConfigMapKeyKind])
	}
	if !strings.Contains(cm.Data["document.yaml"], "features: 12") {
		t.Errorf("document = %q", cm.Data["document.yaml"])
	}
	if cm.Labels["app.kubernetes.io/version"] != "v0.3.0" {
		t.Errorf("labels = %v", cm.Labels)
	}
	if cm.Labels["app.kubernetes.io/component"] != "projectreport" {
		t.Errorf("labels = %v", cm.Labels)
	}
}

func TestFromFile_ConfigMap(t *testing.T) {
	cs := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "fast", Namespace: "sirius"},
		Data: map[string]string{
			ConfigMapKeyFormat: "json",
			"document.json":    `{"alignedFeatureIds":["f1","f2"],"recompute":true}`,
		},
	}, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "legacy", Namespace: "sirius"},
		Data: map[string]string{
			"document.yaml": "alignedFeatureIds: [f7]\n",
		},
	}, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "empty", Namespace: "sirius"},
	})
	ctx := context.Background()

	sub, err := FromFile[testSubmission](ctx, "cm://sirius/fast", WithReadKubeClient(cs))
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if !sub.Recompute || len(sub.AlignedFeatureIDs) != 2 {
		t.Errorf("unexpected value: %+v", sub)
	}

	sub, err = FromFile[testSubmission](ctx, "cm://sirius/legacy", WithReadKubeClient(cs))
	if err != nil {
		t.Fatalf("FromFile without format key: %v", err)
	}
	if sub.AlignedFeatureIDs[0] != "f7" {
		t.Errorf("unexpected value: %+v", sub)
	}

	if _, err := FromFile[testSubmission](ctx, "cm://sirius/empty", WithReadKubeClient(cs)); err == nil {
		t.Error("expected error for ConfigMap without document")
	}
	if _, err := FromFile[testSubmission](ctx, "cm://sirius/missing", WithReadKubeClient(cs)); err == nil {
		t.Error("expected error for missing ConfigMap")
	}
}

func TestLabelValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{"v0.3.0", "v0.3.0"},
		{"6.1.0+build/7", "6.1.0_build_7"},
		{"-leading", "leading"},
		{strings.Repeat("a", 70), strings.Repeat("a", 63)},
	}
	for _, tt := range tests {
		if got := labelValue(tt.in); got != tt.want {
			t.Errorf("labelValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
