package lsp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeParamsDecodesWorkspaceFolders(t *testing.T) {
	raw := `{
		"processId": 42,
		"rootUri": "file:///proj",
		"workspaceFolders": [{"uri": "file:///proj", "name": "proj"}],
		"clientInfo": {"name": "vscode", "version": "1.0"}
	}`
	var p InitializeParams
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.NotNil(t, p.ProcessID)
	require.Equal(t, 42, *p.ProcessID)
	require.NotNil(t, p.RootURI)
	require.Equal(t, DocumentURI("file:///proj"), *p.RootURI)
	require.Len(t, p.WorkspaceFolders, 1)
	require.Equal(t, "proj", p.WorkspaceFolders[0].Name)
	require.Equal(t, "vscode", p.ClientInfo.Name)
}

func TestCompletionListOmitsNilFieldsCleanly(t *testing.T) {
	list := CompletionList{IsIncomplete: false, Items: []CompletionItem{
		{Label: "Account", Kind: CompletionItemKindClass},
	}}
	data, err := json.Marshal(list)
	require.NoError(t, err)
	require.JSONEq(t, `{"isIncomplete":false,"items":[{"label":"Account","kind":7}]}`, string(data))
}

func TestHoverEncodesMarkdownContents(t *testing.T) {
	h := Hover{Contents: MarkupContent{Kind: "markdown", Value: "**Account**"}}
	data, err := json.Marshal(h)
	require.NoError(t, err)
	require.JSONEq(t, `{"contents":{"kind":"markdown","value":"**Account**"}}`, string(data))
}

func TestServerCapabilitiesOmitsAbsentCompletionProvider(t *testing.T) {
	caps := ServerCapabilities{TextDocumentSync: SyncFull, HoverProvider: true}
	data, err := json.Marshal(caps)
	require.NoError(t, err)
	require.JSONEq(t, `{"textDocumentSync":1,"hoverProvider":true}`, string(data))
}

func TestCancelParamsAcceptsStringOrNumberID(t *testing.T) {
	var strID CancelParams
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc"}`), &strID))
	require.Equal(t, "abc", strID.ID)

	var numID CancelParams
	require.NoError(t, json.Unmarshal([]byte(`{"id":7}`), &numID))
	require.EqualValues(t, 7, numID.ID)
}
