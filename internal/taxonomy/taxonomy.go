// Package taxonomy holds the fixed vocabulary tables used by profile
// analysis, compatibility scoring and letter generation. The tables are
// ordered slices on purpose: classification ties break toward the
// first-listed entry, so the order is part of the behavior.
package taxonomy

// Domain groups the search keywords and the cover letter template of one
// occupational category.
type Domain struct {
	Name     string
	Keywords []string
	Letter   string
}

// GeneralDomain is used when no domain keyword matches the profile.
const GeneralDomain = "general"

// GeneralKeywords is the fallback keyword list for the general domain.
var GeneralKeywords = []string{"emploi"}

// Domains lists the known occupational categories in priority order.
var Domains = []Domain{
	{
		Name: "commercial",
		Keywords: []string{
			"commercial", "vente", "sales", "business development",
			"négociation", "negotiation", "crm", "prospection", "compte client",
		},
		Letter: letterCommercial,
	},
	{
		Name: "informatique",
		Keywords: []string{
			"développeur", "developer", "informatique", "software", "python",
			"java", "golang", "devops", "cloud", "web",
		},
		Letter: letterInformatique,
	},
	{
		Name: "marketing",
		Keywords: []string{
			"marketing", "communication", "digital", "seo", "réseaux sociaux",
			"social media", "contenu", "campagne", "branding",
		},
		Letter: letterMarketing,
	},
	{
		Name: "finance",
		Keywords: []string{
			"finance", "comptabilité", "accounting", "audit", "trésorerie",
			"contrôle de gestion", "fiscalité", "reporting financier",
		},
		Letter: letterFinance,
	},
	{
		Name: "rh",
		Keywords: []string{
			"ressources humaines", "recrutement", "recruteur", "paie",
			"talents", "sirh", "onboarding", "relations sociales",
		},
		Letter: letterRH,
	},
}

// Find returns the domain with the given name, or nil when unknown.
func Find(name string) *Domain {
	for i := range Domains {
		if Domains[i].Name == name {
			return &Domains[i]
		}
	}
	return nil
}

// JuniorMarkers flag entry-level profiles and listings.
var JuniorMarkers = []string{
	"junior", "débutant", "stagiaire", "alternance", "intern", "beginner",
	"première expérience",
}

// SeniorMarkers flag experienced profiles and listings.
var SeniorMarkers = []string{
	"senior", "expert", "confirmé", "lead", "manager", "directeur",
	"responsable",
}

// ScamSignals are penalized during scoring. Each distinct hit costs the
// listing a fixed penalty.
var ScamSignals = []string{
	"urgent", "paiement", "payment", "formation payante", "paid training",
	"investissement", "investment", "argent facile", "easy money",
	"frais d'inscription",
}

// TechnicalKeywords are scanned first when extracting listing keywords for
// the resume text.
var TechnicalKeywords = []string{
	"python", "java", "javascript", "golang", "sql", "excel", "crm",
	"salesforce", "sap", "power bi", "docker", "kubernetes", "aws", "react",
}

// SoftSkills are scanned after the technical keywords.
var SoftSkills = []string{
	"communication", "leadership", "autonomie", "rigueur",
	"travail en équipe", "teamwork", "adaptabilité", "gestion de projet",
	"créativité",
}

// Letter templates. Placeholders are interpolated by the generator.
const (
	letterCommercial = `Madame, Monsieur,

Votre offre « {{TITLE}} » chez {{COMPANY}} ({{LOCATION}}) a retenu toute mon attention. Fort d'une expérience orientée résultats, je maîtrise {{SKILLS}} et je sais construire une relation client durable tout en dépassant mes objectifs de vente.

Je serais ravi d'échanger sur la manière dont je peux contribuer au développement commercial de {{COMPANY}}.

Cordialement`

	letterInformatique = `Madame, Monsieur,

Le poste « {{TITLE}} » proposé par {{COMPANY}} ({{LOCATION}}) correspond précisément à mon parcours technique. Mes compétences en {{SKILLS}} me permettent de livrer des solutions fiables et maintenables, du cadrage à la mise en production.

Je me tiens à votre disposition pour un entretien afin de détailler mes réalisations.

Cordialement`

	letterMarketing = `Madame, Monsieur,

C'est avec grand intérêt que je postule à l'offre « {{TITLE}} » chez {{COMPANY}} ({{LOCATION}}). Créatif et orienté données, je m'appuie sur {{SKILLS}} pour concevoir des campagnes qui engagent et convertissent.

Je serais heureux de vous présenter des exemples concrets de campagnes menées avec succès.

Cordialement`

	letterFinance = `Madame, Monsieur,

Votre annonce « {{TITLE}} » au sein de {{COMPANY}} ({{LOCATION}}) m'intéresse vivement. Rigoureux et fiable, je mets {{SKILLS}} au service d'une information financière exacte et produite dans les délais.

Dans l'attente de votre retour, je vous prie d'agréer mes salutations distinguées.

Cordialement`

	letterRH = `Madame, Monsieur,

Je souhaite rejoindre {{COMPANY}} ({{LOCATION}}) sur le poste « {{TITLE}} ». À l'écoute et organisé, je m'appuie sur {{SKILLS}} pour attirer, intégrer et fidéliser les talents.

Je reste disponible pour un entretien à votre convenance.

Cordialement`

	// GenericLetter is the fallback template for unknown domains.
	GenericLetter = `Madame, Monsieur,

Je me permets de vous adresser ma candidature pour le poste « {{TITLE}} » chez {{COMPANY}} ({{LOCATION}}). Mes compétences en {{SKILLS}} et ma motivation me permettront de m'intégrer rapidement à vos équipes.

Dans l'attente de votre retour, veuillez agréer mes salutations distinguées.

Cordialement`
)

// LetterFor returns the cover letter template of the given domain, falling
// back to the generic template for unknown domains.
func LetterFor(domain string) string {
	if d := Find(domain); d != nil && d.Letter != "" {
		return d.Letter
	}
	return GenericLetter
}
