package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopes(t *testing.T) {
	home := File{Path: "views/home/home_screen.dart", Roles: []string{"screen"}}
	helper := File{Path: "utils/location_permission_helper.dart"}

	tests := []struct {
		name  string
		scope Scope
		file  File
		want  bool
	}{
		{name: "named_match", scope: Named("home_screen.dart"), file: home, want: true},
		{name: "named_miss", scope: Named("home_screen.dart"), file: helper, want: false},
		{name: "glob_match", scope: Glob("views/**"), file: home, want: true},
		{name: "glob_miss", scope: Glob("views/**"), file: helper, want: false},
		{name: "glob_exact_path", scope: Glob("utils/location_permission_helper.dart"), file: helper, want: true},
		{name: "glob_second_pattern", scope: Glob("admin/**", "**/*_helper.dart"), file: helper, want: true},
		{name: "role_match", scope: Role("screen"), file: home, want: true},
		{name: "role_miss", scope: Role("screen"), file: helper, want: false},
		{name: "any_of", scope: AnyOf(Named("x.dart"), Role("screen")), file: home, want: true},
		{name: "any_of_none", scope: AnyOf(Named("x.dart"), Role("screen")), file: helper, want: false},
		{name: "not", scope: Not(Glob("views/**")), file: helper, want: true},
		{name: "func", scope: ScopeFunc(func(f File) bool { return f.Name() == "home_screen.dart" }), file: home, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.Allows(tt.file))
			assert.NotEmpty(t, tt.scope.String())
		})
	}
}

func TestRoleMap(t *testing.T) {
	roles := RoleMap{
		"screen": {"views/**"},
		"admin":  {"views/admin/**", "admin/**"},
		"util":   {"utils/**"},
	}

	assert.Equal(t, []string{"admin", "screen"}, roles.Resolve("views/admin/refunds/admin_refund_list.dart"))
	assert.Equal(t, []string{"screen"}, roles.Resolve("views/home/home_screen.dart"))
	assert.Empty(t, roles.Resolve("main.dart"))

	f := roles.NewFile("utils/translations.dart")
	assert.Equal(t, "translations.dart", f.Name())
	assert.True(t, f.HasRole("util"))
	assert.False(t, f.HasRole("screen"))
}
