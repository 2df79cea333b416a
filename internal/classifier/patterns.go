package classifier

// Keyword and phrase lists used by the question predicates. Matching is
// case-insensitive substring containment unless a predicate states otherwise.

var greetingExact = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "yo": {}, "hiya": {}, "heya": {},
	"good morning": {}, "good afternoon": {}, "good evening": {}, "gm": {}, "gn": {},
	"thank you": {}, "thanks": {}, "thx": {}, "ty": {},
	"bye": {}, "goodbye": {}, "see you": {}, "see ya": {}, "cya": {}, "take care": {},
}

var greetingPrefixes = []string{
	"hi ", "hello ", "hey ",
	"thank you", "thanks", "thx", "ty ",
	"good morning", "good afternoon", "good evening",
	"bye", "goodbye", "see you", "see ya",
}

var offTopicKeywords = []string{
	"weather", "news", "politics", "sports", "entertainment",
	"personal advice", "relationship", "health", "medical",
	"cooking", "travel", "shopping", "finance", "investment",
	"current events", "celebrity", "movie", "music", "book",
	"game", "gaming", "social media", "dating", "family",
}

var offTopicPatterns = []string{
	"what's happening", "what's new", "how's your day",
	"tell me about yourself personally", "what do you think about",
	"do you know about", "have you heard about", "what's your opinion",
}

var vagueOpeners = []string{
	"how do you", "what about", "tell me about", "explain",
	"what is", "how does", "why", "when", "where",
}

var technicalTerms = []string{
	"algorithm", "data structure", "database", "api", "framework",
	"language", "coding", "programming", "system", "design",
	"interview", "technical", "behavioral", "experience",
}

var comparisonKeywords = []string{
	"compare", "versus", "vs ", "difference between", "differences between",
}

var personalIndicators = []string{
	"yourself", "myself", "about you", "about me",
	"your background", "my background", "your experience", "my experience",
	"your skills", "my skills", "your strengths", "my strengths",
	"your weaknesses", "my weaknesses", "your projects", "my projects",
	"your career", "my career", "your goals", "my goals",
	"hire you", "interested in", "motivates you", "motivates me",
	"introduce", "tell me about", "describe yourself",
}

var personalReferences = []string{
	"you are", "you have", "you did", "you worked", "you developed",
	"you created", "you built", "you designed", "you implemented",
}

var strategyIndicators = []string{
	"optimize", "improve", "reduce", "increase", "solve", "handle",
	"implement", "approach", "strategy", "method", "technique",
	"performance", "efficiency", "scalability", "reliability",
}

var questionOpeners = []string{
	"how", "what", "which", "describe", "explain",
}

// Personal-experience phrases that flip a would-be strategy question back to
// first-person territory.
var strategyPersonalOverrides = []string{
	"tell me about yourself", "your experience", "your background",
	"your skills", "your strengths", "your weaknesses", "your projects",
	"why should we hire you", "what motivates you", "introduce yourself",
}

// systemDesignExclusions route questions to the more specific diagram
// classifiers (database schema, UI, algorithm) instead of system design.
var systemDesignExclusions = []string{
	"front page", "user interface", "ui design", "mobile app interface",
	"database schema", "er diagram", "entity relationship",
	"algorithm", "data structure", "sorting", "searching",
	"frontend", "ui/ux", "user experience", "wireframe",
	"mockup", "prototype", "visual design", "layout design",
}

var systemDesignKeywords = []string{
	"system design", "how would you design", "architecture", "architect",
	"high-level design", "hld", "low-level design", "scale to",
	"million users", "billions", "throughput", "latency",
	"load balancer", "cache", "queue", "kafka", "replication",
	"microservices", "distributed system", "scalable", "scalability",
	"api design", "service design", "component design",

	"url shortener", "chat system", "social media", "e-commerce",
	"video streaming", "file storage", "search engine", "recommendation system",
	"notification system", "payment system", "booking system", "messaging system",
	"build a system", "create a system", "implement a system", "develop a system",

	"how to build", "how to create", "how to implement", "how to develop",
	"how would you build", "how would you create", "how would you implement",
	"design a", "design an", "build a", "create a", "implement a", "develop a",
	"construct a", "setup a", "setup an", "configure a", "configure an",

	"infrastructure", "deployment", "deploy", "hosting", "cloud architecture",
	"aws architecture", "azure architecture", "gcp architecture", "cloud design",
	"container", "docker", "kubernetes", "orchestration", "devops",

	"performance", "optimization", "optimize", "scaling", "scale",
	"high availability", "fault tolerance", "redundancy", "backup",
	"disaster recovery", "monitoring", "logging", "metrics",
	"load balancing", "auto-scaling", "auto scaling",

	"data architecture", "data pipeline", "etl", "elt", "data warehouse",
	"data lake", "big data", "analytics", "reporting", "business intelligence",
	"real-time processing", "batch processing", "stream processing",

	"security architecture", "network design", "firewall", "vpn",
	"authentication", "authorization", "encryption", "ssl", "tls",

	"integration", "api integration", "third-party integration",
	"webhook", "rest api", "graphql", "soap", "rpc",

	"mvc", "mvp", "mvvm", "monolith", "serverless",
	"event-driven", "cqs", "cqrs", "event sourcing", "saga pattern",

	"react architecture", "angular architecture", "vue architecture",
	"node.js architecture", "python architecture", "java architecture",
	"spring architecture", "django architecture", "flask architecture",

	"business architecture", "domain architecture", "enterprise architecture",
	"solution architecture", "technical architecture", "application architecture",
}

var databaseSchemaKeywords = []string{
	"database schema", "er diagram", "entity relationship", "database design",
	"show the database", "database structure", "table design", "schema design",
	"relational model", "database model", "data model",
}

var uiDesignKeywords = []string{
	"front page", "user interface", "ui design", "mobile app interface",
	"frontend design", "ui/ux", "user experience", "wireframe",
	"mockup", "prototype", "visual design", "layout design",
	"design the front", "design the interface", "design the page",
}

var algorithmKeywords = []string{
	"algorithm", "data structure", "sorting", "searching", "recommendation algorithm",
	"build a recommendation", "implement authentication", "authentication algorithm",
	"search algorithm", "matching algorithm", "optimization algorithm",
}

var contextPronouns = []string{"this", "that", "it", "these", "those", "them"}

var contextReferences = []string{"previous", "earlier", "above", "before", "last"}

var followUpWords = []string{"also", "additionally", "furthermore", "more", "another"}
