package listen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainListener struct{}

func (plainListener) Method(string) (Func, bool) { return nil, false }

type versionedListener struct {
	plainListener
	version any
}

func (l versionedListener) APIVersion() any { return l.version }

type testLibrary struct{ listeners []any }

func (l *testLibrary) Name() string     { return "Lib" }
func (l *testLibrary) Listeners() []any { return l.listeners }

func TestAPIVersion(t *testing.T) {
	tests := []struct {
		name     string
		listener Listener
		want     int
		wantErr  string
	}{
		{name: "not declared", listener: plainListener{}, want: 3},
		{name: "nil", listener: versionedListener{}, want: 3},
		{name: "int 2", listener: versionedListener{version: 2}, want: 2},
		{name: "int64 3", listener: versionedListener{version: int64(3)}, want: 3},
		{name: "string", listener: versionedListener{version: " 2 "}, want: 2},
		{name: "float", listener: versionedListener{version: 3.0}, want: 3},
		{name: "unsupported int", listener: versionedListener{version: 1}, wantErr: "Unsupported API version '1'."},
		{name: "unsupported string", listener: versionedListener{version: "two"}, wantErr: "Unsupported API version 'two'."},
		{name: "unsupported type", listener: versionedListener{version: []int{2}}, wantErr: "Unsupported API version '[2]'."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := APIVersion(tc.listener)

			if tc.wantErr != "" {
				var dataErr *DataError
				require.ErrorAs(t, err, &dataErr)
				assert.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		source   string
		wantName string
		wantArgs []string
	}{
		{source: "Listener", wantName: "Listener"},
		{source: "Listener:a:b", wantName: "Listener", wantArgs: []string{"a", "b"}},
		{source: "Listener;a;b:c", wantName: "Listener", wantArgs: []string{"a", "b:c"}},
		{source: "Listener:a;b", wantName: "Listener", wantArgs: []string{"a;b"}},
		{source: "Listener:", wantName: "Listener", wantArgs: []string{""}},
		{source: `C:\path\listener.lua`, wantName: `C:\path\listener.lua`},
		{source: `C:\path\listener.lua:arg`, wantName: `C:\path\listener.lua`, wantArgs: []string{"arg"}},
		{source: "C:/listener.lua;x", wantName: "C:/listener.lua", wantArgs: []string{"x"}},
	}

	for _, tc := range tests {
		t.Run(tc.source, func(t *testing.T) {
			name, args := SplitArgs(tc.source)

			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestSplitArgs_ExistingPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listener.lua")
	require.NoError(t, os.WriteFile(path, []byte("return {}"), 0o600))

	name, args := SplitArgs(path + ":x:y")

	assert.Equal(t, path, name)
	assert.Equal(t, []string{"x", "y"}, args)
}

func TestImport_DisplayName(t *testing.T) {
	named, err := Import(&Object{Name: "Declared"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Declared", named.Name())

	unnamed, err := Import(&Object{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Object", unnamed.Name())

	plain, err := Import(plainListener{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "plainListener", plain.Name())
}

func TestImport_SelectsFacadeByVersion(t *testing.T) {
	lib := &testLibrary{}

	v2, err := Import(&Object{Version: 2}, lib, nil)
	require.NoError(t, err)
	assert.IsType(t, &v2Facade{}, v2)
	assert.Equal(t, 2, v2.Version())
	assert.Same(t, lib, v2.Library())

	v3, err := Import(&Object{}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &v3Facade{}, v3)
	assert.Nil(t, v3.Library())
}

func TestImport_Errors(t *testing.T) {
	importErr := &DataError{Message: "Importing 'Missing' failed."}
	importer := ImporterFunc(func(name string, args []string) (Listener, error) {
		if name == "Nothing" {
			return nil, nil
		}
		return nil, importErr
	})

	_, err := Import("Missing", nil, importer)
	assert.Same(t, importErr, err)

	_, err = Import("Nothing", nil, importer)
	assert.EqualError(t, err, "Importing listener 'Nothing' returned nothing.")

	_, err = Import("Missing", nil, nil)
	assert.EqualError(t, err, "No importer available for listener 'Missing'.")

	_, err = Import(42, nil, nil)
	assert.EqualError(t, err, "Listener must be a Listener or a string, got int.")

	_, err = Import(&Object{Name: "Bad", Version: 5}, nil, nil)
	assert.EqualError(t, err, "Unsupported API version '5'.")
}

func TestImportAll_TopLevel_LogsAndSkips(t *testing.T) {
	logs := captureLogs(t)
	sources := []any{
		&Object{Name: "First"},
		&Object{Name: "Bad", Version: "x"},
		"Missing:arg",
		&Object{Name: "Last", Version: 2},
	}
	importer := ImporterFunc(func(string, []string) (Listener, error) {
		return nil, errors.New("not found")
	})

	facades, err := ImportAll(sources, nil, importer)

	require.NoError(t, err)
	require.Len(t, facades, 2)
	assert.Equal(t, "First", facades[0].Name())
	assert.Equal(t, "Last", facades[1].Name())
	assert.Contains(t, logs.String(), "Taking listener 'Bad' into use failed: Unsupported API version 'x'.")
	assert.Contains(t, logs.String(), "Taking listener 'Missing:arg' into use failed: not found")
}

func TestImportAll_Library_FailureReturned(t *testing.T) {
	lib := &testLibrary{}
	sources := []any{&Object{Name: "Good"}, &Object{Name: "Bad", Version: 1}}

	facades, err := ImportAll(sources, lib, nil)

	assert.Nil(t, facades)
	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "Taking listener 'Bad' into use failed: Unsupported API version '1'.", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "Unsupported API version '1'.")
}

func TestImportAll_LibraryFacadesAreScoped(t *testing.T) {
	called := ""
	o := &Object{Methods: map[string]Func{
		"_startTest": func(...any) error {
			called = "_startTest"
			return nil
		},
	}}

	facades, err := ImportAll([]any{o}, &testLibrary{}, nil)
	require.NoError(t, err)
	require.NoError(t, facades[0].StartTest(&TestData{}, &TestResult{}))

	assert.Equal(t, "_startTest", called)
}
