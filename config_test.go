package main

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_onlySomeEnvsSet(t *testing.T) {
	t.Run("false when no envs passed in", func(t *testing.T) {
		actual := onlySomeEnvsSet()
		expected := false
		if expected != actual {
			t.Errorf("onlySomeEnvsSet() = %v, expected %v", actual, expected)
		}
	})
	t.Run("true when only some of the envs are set", func(t *testing.T) {
		os.Setenv("valueOne", "one")
		actual := onlySomeEnvsSet("valueOne", "valueTwo")
		expected := true
		if expected != actual {
			t.Errorf("onlySomeEnvsSet() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
	})
	t.Run("false when all envs are set", func(t *testing.T) {
		os.Setenv("valueOne", "one")
		os.Setenv("valueTwo", "two")
		actual := onlySomeEnvsSet("valueOne", "valueTwo")
		expected := false
		if expected != actual {
			t.Errorf("onlySomeEnvsSet() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
		os.Unsetenv("valueTwo")
	})
	t.Run("false when none of the envs are set", func(t *testing.T) {
		actual := onlySomeEnvsSet("valueOne", "valueTwo")
		expected := false
		if expected != actual {
			t.Errorf("onlySomeEnvsSet() = %v, expected %v", actual, expected)
		}
	})
}

func Test_noEnvsSet(t *testing.T) {
	t.Run("true when none of the envs are set", func(t *testing.T) {
		actual := noEnvsSet("valueOne", "valueTwo")
		expected := true
		if expected != actual {
			t.Errorf("noEnvsSet() = %v, expected %v", actual, expected)
		}
	})
	t.Run("false when some of the envs set", func(t *testing.T) {
		os.Setenv("valueOne", "one")
		actual := noEnvsSet("valueOne", "valueTwo")
		expected := false
		if expected != actual {
			t.Errorf("noEnvsSet() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
	})
	t.Run("false when all of the envs set", func(t *testing.T) {
		os.Setenv("valueOne", "one")
		os.Setenv("valueTwo", "two")
		actual := noEnvsSet("valueOne", "valueTwo")
		expected := false
		if expected != actual {
			t.Errorf("noEnvsSet() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
		os.Unsetenv("valueTwo")
	})
}

func Test_getEnvBool(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		actual, err := getEnvBool("IDENTIFIABLE_TEST_BOOL", true)
		if err != nil {
			t.Fatal(err)
		}
		if actual != true {
			t.Errorf("getEnvBool() = %v, expected %v", actual, true)
		}
	})
	t.Run("parses the value when set", func(t *testing.T) {
		t.Setenv("IDENTIFIABLE_TEST_BOOL", "false")
		actual, err := getEnvBool("IDENTIFIABLE_TEST_BOOL", true)
		if err != nil {
			t.Fatal(err)
		}
		if actual != false {
			t.Errorf("getEnvBool() = %v, expected %v", actual, false)
		}
	})
	t.Run("error on garbage", func(t *testing.T) {
		t.Setenv("IDENTIFIABLE_TEST_BOOL", "maybe")
		if _, err := getEnvBool("IDENTIFIABLE_TEST_BOOL", true); err == nil {
			t.Error("getEnvBool() expected an error")
		}
	})
}

func Test_loadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Port != "4000" {
			t.Errorf("Port = %q, expected %q", cfg.Port, "4000")
		}
		if !cfg.Identifiable.OverwriteToKey || !cfg.Identifiable.OverwriteToParam {
			t.Errorf("Identifiable = %+v, expected both overwrites on", cfg.Identifiable)
		}
		if cfg.Declarations.Users.Style != "numeric" {
			t.Errorf("Users.Style = %v, expected numeric", cfg.Declarations.Users.Style)
		}
	})
	t.Run("partial database envs", func(t *testing.T) {
		t.Setenv("DB_ADDR", "db:5432")
		if _, err := loadConfig(); err == nil {
			t.Error("loadConfig() expected an error")
		}
	})
	t.Run("config file then env overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "identifiable.yaml")
		contents := "overwrite_to_param: false\ndeclarations:\n  users:\n    style: uuid\n"
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("IDENTIFIABLE_CONFIG", path)
		t.Setenv("IDENTIFIABLE_OVERWRITE_TO_KEY", "false")

		cfg, err := loadConfig()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Identifiable.OverwriteToKey || cfg.Identifiable.OverwriteToParam {
			t.Errorf("Identifiable = %+v, expected both overwrites off", cfg.Identifiable)
		}
		if cfg.Declarations.Users.Style != "uuid" || cfg.Declarations.Users.Length != nil {
			t.Errorf("Users = %+v, expected a bare uuid declaration", cfg.Declarations.Users)
		}
	})
}
