package frameworks

// Builtin returns the registry's minimum built-in detector set (§4.3): a
// test framework, a file-based-routing framework, a server framework, and a
// database-schema library. Each is purely a manifest inspection plus a
// fixed set of conventional glob patterns; none requires editing other
// components to add or remove.
func Builtin() []Detector {
	return []Detector{
		testFrameworkDetector{},
		fileRoutingDetector{},
		serverFrameworkDetector{},
		schemaLibraryDetector{},
	}
}

type testFrameworkDetector struct{}

func (testFrameworkDetector) Name() string { return "test-runner" }

func (testFrameworkDetector) Detect(_ string, m ProjectManifest) (bool, string) {
	for _, pkg := range []string{"vitest", "jest", "@jest/core", "mocha", "ava", "tap"} {
		if m.HasDependency(pkg) {
			return true, m.DevDependencies[pkg]
		}
	}
	return false, ""
}

func (testFrameworkDetector) EntryConfig() EntryConfig {
	return EntryConfig{
		EntryFilePatterns: []string{
			"**/*.test.ts", "**/*.test.tsx", "**/*.test.js",
			"**/*.spec.ts", "**/*.spec.tsx", "**/*.spec.js",
			"**/__tests__/**",
		},
		UsedExportNames: AllExportNames,
	}
}

func (testFrameworkDetector) RetainDecorators() map[string]bool { return nil }

type fileRoutingDetector struct{}

func (fileRoutingDetector) Name() string { return "file-based-router" }

func (fileRoutingDetector) Detect(_ string, m ProjectManifest) (bool, string) {
	for _, pkg := range []string{"next", "@remix-run/react", "nuxt", "@sveltejs/kit"} {
		if m.HasDependency(pkg) {
			return true, m.Dependencies[pkg]
		}
	}
	return false, ""
}

func (fileRoutingDetector) EntryConfig() EntryConfig {
	return EntryConfig{
		EntryFilePatterns: []string{
			"pages/**/*.{ts,tsx,js,jsx}",
			"app/**/page.{ts,tsx}",
			"app/**/layout.{ts,tsx}",
			"app/**/route.{ts,tsx}",
			"app/**/loading.{ts,tsx}",
			"app/**/error.{ts,tsx}",
			"app/**/not-found.{ts,tsx}",
			"middleware.{ts,js}",
		},
		UsedExportNames: UsedExportNames{Names: map[string]bool{
			"default": true, "getServerSideProps": true, "getStaticProps": true,
			"getStaticPaths": true, "GET": true, "POST": true, "PUT": true,
			"PATCH": true, "DELETE": true, "config": true, "metadata": true,
		}},
	}
}

func (fileRoutingDetector) RetainDecorators() map[string]bool { return nil }

type serverFrameworkDetector struct{}

func (serverFrameworkDetector) Name() string { return "server-framework" }

func (serverFrameworkDetector) Detect(_ string, m ProjectManifest) (bool, string) {
	for _, pkg := range []string{"express", "fastify", "koa", "@nestjs/core", "hapi"} {
		if m.HasDependency(pkg) {
			return true, m.Dependencies[pkg]
		}
	}
	return false, ""
}

func (serverFrameworkDetector) EntryConfig() EntryConfig {
	return EntryConfig{
		EntryFilePatterns: []string{
			"**/*.controller.ts", "**/*.module.ts", "**/*.gateway.ts",
			"src/main.ts", "src/server.ts", "src/index.ts",
		},
		UsedExportNames: AllExportNames,
	}
}

func (serverFrameworkDetector) RetainDecorators() map[string]bool {
	return map[string]bool{
		"Injectable": true, "Controller": true, "Module": true,
		"Get": true, "Post": true, "Put": true, "Patch": true, "Delete": true,
	}
}

type schemaLibraryDetector struct{}

func (schemaLibraryDetector) Name() string { return "database-schema" }

func (schemaLibraryDetector) Detect(_ string, m ProjectManifest) (bool, string) {
	for _, pkg := range []string{"prisma", "@prisma/client", "drizzle-orm", "typeorm", "sequelize"} {
		if m.HasDependency(pkg) {
			return true, m.Dependencies[pkg]
		}
	}
	return false, ""
}

func (schemaLibraryDetector) EntryConfig() EntryConfig {
	return EntryConfig{
		EntryFilePatterns: []string{
			"**/schema.prisma", "**/*.schema.ts", "drizzle/**", "migrations/**",
		},
		UsedExportNames: AllExportNames,
		IgnorePatterns:  []string{"**/*.generated.ts"},
	}
}

func (schemaLibraryDetector) RetainDecorators() map[string]bool {
	return map[string]bool{"Entity": true, "Column": true, "PrimaryGeneratedColumn": true}
}
