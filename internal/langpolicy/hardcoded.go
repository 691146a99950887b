package langpolicy

import "github.com/optimuscode/optimus/pkg/models"

// Hardcoded returns the fallback policy table used when configs/languages.yaml
// cannot be loaded, ported from the teacher's compiler.getHardcodedEnvironments.
// Covers every language tag the runner protocol recognizes (spec.md §6).
func Hardcoded() Table {
	return Table{
		models.LanguagePython: {
			Language: models.LanguagePython, Image: "optimus/python:3.12",
			FileExtension: ".py", Compiled: false, StdinPiped: true,
			ExecuteCmd:   []string{"python3", "{{file}}"},
			MemDefaultMB: 256, CPUDefault: 0.5,
		},
		models.LanguageJavaScript: {
			Language: models.LanguageJavaScript, Image: "optimus/node:20",
			FileExtension: ".js", Compiled: false, StdinPiped: true,
			ExecuteCmd:   []string{"node", "{{file}}"},
			MemDefaultMB: 256, CPUDefault: 0.5,
		},
		models.LanguageTypeScript: {
			Language: models.LanguageTypeScript, Image: "optimus/node:20",
			FileExtension: ".ts", Compiled: false, StdinPiped: true,
			ExecuteCmd:   []string{"npx", "tsx", "{{file}}"},
			MemDefaultMB: 256, CPUDefault: 0.5,
		},
		models.LanguageRuby: {
			Language: models.LanguageRuby, Image: "optimus/ruby:3.3",
			FileExtension: ".rb", Compiled: false, StdinPiped: true,
			ExecuteCmd:   []string{"ruby", "{{file}}"},
			MemDefaultMB: 256, CPUDefault: 0.5,
		},
		models.LanguagePHP: {
			Language: models.LanguagePHP, Image: "optimus/php:8.3",
			FileExtension: ".php", Compiled: false, StdinPiped: true,
			ExecuteCmd:   []string{"php", "{{file}}"},
			MemDefaultMB: 256, CPUDefault: 0.5,
		},
		models.LanguageC: {
			Language: models.LanguageC, Image: "optimus/gcc:13",
			FileExtension: ".c", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"gcc", "-O2", "-o", "{{bin}}", "{{file}}"},
			ExecuteCmd:   []string{"{{bin}}"},
			MemDefaultMB: 128, CPUDefault: 0.5,
		},
		models.LanguageCpp: {
			Language: models.LanguageCpp, Image: "optimus/gcc:13",
			FileExtension: ".cpp", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"g++", "-std=c++20", "-O2", "-o", "{{bin}}", "{{file}}"},
			ExecuteCmd:   []string{"{{bin}}"},
			MemDefaultMB: 128, CPUDefault: 0.5,
		},
		models.LanguageGo: {
			Language: models.LanguageGo, Image: "optimus/golang:1.23",
			FileExtension: ".go", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"go", "build", "-o", "{{bin}}", "{{file}}"},
			ExecuteCmd:   []string{"{{bin}}"},
			MemDefaultMB: 256, CPUDefault: 0.5,
		},
		models.LanguageRust: {
			Language: models.LanguageRust, Image: "optimus/rust:1.80",
			FileExtension: ".rs", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"rustc", "-O", "-o", "{{bin}}", "{{file}}"},
			ExecuteCmd:   []string{"{{bin}}"},
			MemDefaultMB: 256, CPUDefault: 0.5,
		},
		models.LanguageJava: {
			Language: models.LanguageJava, Image: "optimus/openjdk:21",
			FileExtension: ".java", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"javac", "-d", "{{workdir}}", "{{file}}"},
			ExecuteCmd:   []string{"java", "-cp", "{{workdir}}", "Main"},
			MemDefaultMB: 512, CPUDefault: 0.5,
		},
		models.LanguageKotlin: {
			Language: models.LanguageKotlin, Image: "optimus/kotlin:1.9",
			FileExtension: ".kt", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"kotlinc", "{{file}}", "-include-runtime", "-d", "{{bin}}.jar"},
			ExecuteCmd:   []string{"java", "-jar", "{{bin}}.jar"},
			MemDefaultMB: 512, CPUDefault: 0.5,
		},
		models.LanguageScala: {
			Language: models.LanguageScala, Image: "optimus/scala:3.3",
			FileExtension: ".scala", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"scalac", "-d", "{{workdir}}", "{{file}}"},
			ExecuteCmd:   []string{"scala", "-cp", "{{workdir}}", "Main"},
			MemDefaultMB: 512, CPUDefault: 0.5,
		},
		models.LanguageCSharp: {
			Language: models.LanguageCSharp, Image: "optimus/dotnet:8.0",
			FileExtension: ".cs", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"csc", "-out:{{bin}}.exe", "{{file}}"},
			ExecuteCmd:   []string{"mono", "{{bin}}.exe"},
			MemDefaultMB: 512, CPUDefault: 0.5,
		},
		models.LanguageSwift: {
			Language: models.LanguageSwift, Image: "optimus/swift:5.9",
			FileExtension: ".swift", Compiled: true, StdinPiped: true,
			CompileCmd:   []string{"swiftc", "-O", "-o", "{{bin}}", "{{file}}"},
			ExecuteCmd:   []string{"{{bin}}"},
			MemDefaultMB: 512, CPUDefault: 0.5,
		},
	}
}
