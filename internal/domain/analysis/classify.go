package analysis

import (
	"sort"
	"strings"
)

// Architecture labels. Classification always yields one of these.
const (
	ArchModularMonorepo = "modular monorepo with modular architecture"
	ArchComponentBased  = "component-based architecture"
	ArchAPIDriven       = "API-driven architecture"
	ArchStandard        = "standard structure"
)

// techRule maps any of the listed dependency identifiers to a display label.
type techRule struct {
	deps  []string
	label string
}

// techRules is evaluated in order; labels are appended in check order, never
// re-sorted. Aliases within a rule are a logical OR.
var techRules = []techRule{
	{[]string{"next"}, "Next.js"},
	{[]string{"react", "react-dom"}, "React"},
	{[]string{"vue"}, "Vue.js"},
	{[]string{"svelte"}, "Svelte"},
	{[]string{"express"}, "Express"},
	{[]string{"fastify"}, "Fastify"},
	{[]string{"three", "@react-three/fiber"}, "Three.js"},
	{[]string{"@tensorflow/tfjs", "@tensorflow/tfjs-node"}, "TensorFlow.js"},
	{[]string{"openai"}, "OpenAI API"},
	{[]string{"@anthropic-ai/sdk"}, "Anthropic API"},
	{[]string{"electron"}, "Electron"},
	{[]string{"tailwindcss"}, "Tailwind CSS"},
	{[]string{"vite"}, "Vite"},
	{[]string{"typescript"}, "TypeScript"},
}

// maxLanguageLabels caps how many histogram languages join the stack list.
const maxLanguageLabels = 3

// ClassifyTechStack derives display labels from dependency membership, then
// appends up to the top 3 languages by byte count that are not already
// present. Dependency matches keep rule order; languages are ordered by byte
// count, name as tie-break so output stays deterministic.
func ClassifyTechStack(sig Signals) []string {
	var labels []string
	present := make(map[string]bool)

	for _, rule := range techRules {
		if present[rule.label] {
			continue
		}
		for _, dep := range rule.deps {
			if sig.DependencyNames[dep] {
				labels = append(labels, rule.label)
				present[rule.label] = true
				break
			}
		}
	}

	type langBytes struct {
		name  string
		bytes int64
	}
	ranked := make([]langBytes, 0, len(sig.Languages))
	for name, b := range sig.Languages {
		ranked = append(ranked, langBytes{name, b})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].bytes != ranked[j].bytes {
			return ranked[i].bytes > ranked[j].bytes
		}
		return ranked[i].name < ranked[j].name
	})

	added := 0
	for _, l := range ranked {
		if added == maxLanguageLabels {
			break
		}
		if present[l.name] {
			continue
		}
		labels = append(labels, l.name)
		present[l.name] = true
		added++
	}
	return labels
}

// TechDomain buckets capabilities for super-power derivation.
type TechDomain int

const (
	DomainNone TechDomain = iota
	DomainGenerativeAI
	DomainOnDeviceML
	DomainSpatial3D
)

// capabilityRule maps an identifier group to one CapabilityCategory.
// Each rule fires at most once per analysis.
type capabilityRule struct {
	deps     []string
	domain   TechDomain
	category CapabilityCategory
}

var capabilityRules = []capabilityRule{
	{
		deps:   []string{"openai", "@anthropic-ai/sdk", "@google/generative-ai"},
		domain: DomainGenerativeAI,
		category: CapabilityCategory{
			Name:      "Generative AI Integration",
			Rationale: "Declares a generative AI SDK, so the project can produce text, code, or images from prompts.",
			UseCases:  []string{"chat assistants", "content generation", "semantic search over embeddings"},
			Example:   `const res = await client.chat.completions.create({ model, messages })`,
		},
	},
	{
		deps:   []string{"@tensorflow/tfjs", "@tensorflow/tfjs-node", "ml5", "onnxruntime-web"},
		domain: DomainOnDeviceML,
		category: CapabilityCategory{
			Name:      "On-Device Machine Learning",
			Rationale: "Ships a browser/runtime ML library, so models run locally without a server round trip.",
			UseCases:  []string{"pose and object detection", "offline inference", "privacy-preserving classification"},
			Example:   `const model = await tf.loadLayersModel('model.json'); model.predict(input)`,
		},
	},
	{
		deps:   []string{"three", "@react-three/fiber", "babylonjs", "@babylonjs/core"},
		domain: DomainSpatial3D,
		category: CapabilityCategory{
			Name:      "3D Graphics & Spatial Rendering",
			Rationale: "Uses a WebGL scene graph library, so the project renders interactive 3D content.",
			UseCases:  []string{"product configurators", "data visualization in 3D", "WebXR scenes"},
			Example:   `const scene = new THREE.Scene(); renderer.render(scene, camera)`,
		},
	},
	{
		deps: []string{"socket.io", "socket.io-client", "ws"},
		category: CapabilityCategory{
			Name:      "Real-Time Communication",
			Rationale: "Depends on a websocket layer, so clients and server exchange events without polling.",
			UseCases:  []string{"live collaboration", "presence indicators", "streaming updates"},
			Example:   `io.on('connection', socket => socket.emit('hello'))`,
		},
	},
	{
		deps: []string{"mongoose", "prisma", "@prisma/client", "sequelize", "pg"},
		category: CapabilityCategory{
			Name:      "Data Persistence",
			Rationale: "Declares a database client or ORM, so state survives restarts.",
			UseCases:  []string{"user records", "application state", "audit history"},
			Example:   `await prisma.user.findMany({ where: { active: true } })`,
		},
	},
	{
		deps: []string{"next-auth", "passport", "jsonwebtoken", "@auth0/auth0-react"},
		category: CapabilityCategory{
			Name:      "User Authentication",
			Rationale: "Carries an auth library, so the project gates features behind identities.",
			UseCases:  []string{"login flows", "session management", "role-based access"},
			Example:   `const token = jwt.sign({ sub: user.id }, secret)`,
		},
	},
	{
		deps: []string{"stripe", "@stripe/stripe-js"},
		category: CapabilityCategory{
			Name:      "Payment Processing",
			Rationale: "Integrates a payments SDK, so the project can charge for something.",
			UseCases:  []string{"checkout", "subscriptions", "usage billing"},
			Example:   `await stripe.paymentIntents.create({ amount, currency: 'usd' })`,
		},
	},
}

// capabilityDomains lets the deriver recover domain flags from capability
// names alone.
var capabilityDomains = func() map[string]TechDomain {
	m := make(map[string]TechDomain, len(capabilityRules))
	for _, r := range capabilityRules {
		if r.domain != DomainNone {
			m[r.category.Name] = r.domain
		}
	}
	return m
}()

// ClassifyCapabilities runs the capability rule table against the dependency
// name set. Deterministic: rule order fixes output order, and each rule fires
// at most once, so capability names are unique within a profile.
func ClassifyCapabilities(sig Signals) []CapabilityCategory {
	var out []CapabilityCategory
	for _, rule := range capabilityRules {
		for _, dep := range rule.deps {
			if sig.DependencyNames[dep] {
				out = append(out, rule.category)
				break
			}
		}
	}
	return out
}

// ClassifyArchitecture evaluates four structural path signals in precedence
// order. The default is never absent.
func ClassifyArchitecture(sig Signals) string {
	var hasSrc, hasComponents, hasServices, hasAPI bool
	for _, p := range sig.FileList {
		if p == "src" || strings.HasPrefix(p, "src/") {
			hasSrc = true
		}
		if pathHasSegment(p, "components") {
			hasComponents = true
		}
		if pathHasSegment(p, "services") {
			hasServices = true
		}
		if pathHasSegment(p, "api") || pathHasSegment(p, "routes") {
			hasAPI = true
		}
	}

	switch {
	case hasSrc && hasComponents && hasServices:
		return ArchModularMonorepo
	case hasComponents:
		return ArchComponentBased
	case hasAPI:
		return ArchAPIDriven
	default:
		return ArchStandard
	}
}

func pathHasSegment(path, segment string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == segment {
			return true
		}
	}
	return false
}

// entryPointNames covers conventional entry files across language ecosystems.
var entryPointNames = []string{
	"index.js",
	"index.ts",
	"main.js",
	"main.ts",
	"App.jsx",
	"App.tsx",
	"main.py",
	"app.py",
	"main.go",
	"Main.java",
	"main.rs",
	"main.swift",
}

// DetectEntryPoints returns every path whose final segment matches a
// conventional entry filename, preserving file-tree order.
func DetectEntryPoints(files []string) []string {
	var out []string
	for _, p := range files {
		base := p
		if i := strings.LastIndex(p, "/"); i >= 0 {
			base = p[i+1:]
		}
		for _, name := range entryPointNames {
			if base == name {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
